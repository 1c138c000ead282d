package process

import "sort"

// Tree is an immutable mapping from PID to Record plus the root sequence and
// derived total memory (spec.md §3).
//
// Unlike the teacher's array-indexed ProcessTree (Nodes/Child/Parent/Sister
// slice indices), this tree keys everything by PID directly, since the
// layout pipeline scopes by PID (zoom stack) rather than by tree position.
type Tree struct {
	byPID    map[uint32]Record
	children map[uint32][]uint32 // parent PID -> ordered child PIDs
	roots    []uint32            // root PIDs in stable order
	total    uint64
}

// ByPID returns the record for pid and whether it was found.
func (t *Tree) ByPID(pid uint32) (Record, bool) {
	r, ok := t.byPID[pid]
	return r, ok
}

// Roots returns the ordered sequence of root PIDs.
func (t *Tree) Roots() []uint32 {
	return append([]uint32(nil), t.roots...)
}

// ChildrenOf returns the ordered child PIDs of pid.
func (t *Tree) ChildrenOf(pid uint32) []uint32 {
	return append([]uint32(nil), t.children[pid]...)
}

// TotalMemory returns the sum of memory across all records in the tree.
func (t *Tree) TotalMemory() uint64 {
	return t.total
}

// Len returns the number of records in the tree.
func (t *Tree) Len() int {
	return len(t.byPID)
}

// All returns every record in the tree, in PID order, for iteration by
// callers that don't need tree structure (e.g. the layout pipeline's
// unscoped case).
func (t *Tree) All() []Record {
	out := make([]Record, 0, len(t.byPID))
	for _, r := range t.byPID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// Subtree returns every record in the subtree rooted at pid (inclusive), in
// breadth-first order. An absent pid yields an empty slice.
func (t *Tree) Subtree(pid uint32) []Record {
	root, ok := t.byPID[pid]
	if !ok {
		return nil
	}
	out := []Record{root}
	queue := []uint32{pid}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range t.children[cur] {
			if rec, ok := t.byPID[child]; ok {
				out = append(out, rec)
				queue = append(queue, child)
			}
		}
	}
	return out
}

// HasChildren reports whether pid has at least one child in the tree.
func (t *Tree) HasChildren(pid uint32) bool {
	return len(t.children[pid]) > 0
}

// WithStale returns a copy of t with every record's Stale field set to
// stale, used when a collector pass fails and the prior snapshot is
// retained (spec.md §7).
func (t *Tree) WithStale(stale bool) *Tree {
	out := &Tree{
		byPID:    make(map[uint32]Record, len(t.byPID)),
		children: t.children,
		roots:    t.roots,
		total:    t.total,
	}
	for pid, r := range t.byPID {
		r.Stale = stale
		out.byPID[pid] = r
	}
	return out
}

// Build constructs a Tree from a set of normalized records. Parent/child
// edges are derived from each record's PPID; a PPID of 0 or 1, or a PPID not
// present among the records, makes the record a root (spec.md §3).
//
// Cycles — a reparented orphan reporting a back-edge into its own
// descendants — are broken with union-find over the undirected parent graph
// (spec.md §9, new code: the teacher's BuildTree walks an array of
// Parent/Child/Sister indices with no cycle handling at all, since real
// process trees it targets cannot cycle). Any edge whose endpoints are
// already connected is dropped and its child PID promoted to a root instead
// of being linked to its reported parent.
func Build(records []Record) *Tree {
	t := &Tree{
		byPID:    make(map[uint32]Record, len(records)),
		children: make(map[uint32][]uint32),
	}
	order := make([]uint32, 0, len(records))
	for _, r := range records {
		if _, dup := t.byPID[r.PID]; dup {
			continue
		}
		t.byPID[r.PID] = r
		t.total += r.MemoryBytes
		order = append(order, r.PID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	uf := newUnionFind(order)

	for _, pid := range order {
		rec := t.byPID[pid]
		ppid := rec.PPID
		if ppid == 0 || ppid == 1 || ppid == pid {
			t.roots = append(t.roots, pid)
			continue
		}
		if _, ok := t.byPID[ppid]; !ok {
			t.roots = append(t.roots, pid)
			continue
		}
		if uf.connected(pid, ppid) {
			// Linking pid under ppid would close a cycle in the
			// underlying undirected graph: this is a back-edge.
			// Promote pid to a root instead of linking it.
			t.roots = append(t.roots, pid)
			continue
		}
		uf.union(pid, ppid)
		t.children[ppid] = append(t.children[ppid], pid)
	}

	return t
}

type unionFind struct {
	parent map[uint32]uint32
	rank   map[uint32]int
}

func newUnionFind(pids []uint32) *unionFind {
	uf := &unionFind{parent: make(map[uint32]uint32, len(pids)), rank: make(map[uint32]int, len(pids))}
	for _, p := range pids {
		uf.parent[p] = p
	}
	return uf
}

func (uf *unionFind) find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) connected(a, b uint32) bool {
	return uf.find(a) == uf.find(b)
}

func (uf *unionFind) union(a, b uint32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
