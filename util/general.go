package util

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	terminal "github.com/wayneashleyberry/terminal-dimensions"
)

func ExecutePipeline(commandStr string) (int, string, string, error) {
	commands := strings.Split(commandStr, "|")
	var cmds []*exec.Cmd

	// Trim spaces and create command slices
	for _, cmdStr := range commands {
		parts := strings.Fields(strings.TrimSpace(cmdStr))
		if len(parts) == 0 {
			continue
		}
		cmds = append(cmds, exec.Command(parts[0], parts[1:]...))
	}

	if len(cmds) == 0 {
		return -1, "", "No commands provided", fmt.Errorf("empty command pipeline")
	}

	// Set up pipes for the pipeline
	var stdoutBuf, stderrBuf bytes.Buffer
	var previousCmd *exec.Cmd

	for _, cmd := range cmds {
		cmd.Stderr = &stderrBuf // Capture stderr for each command

		if previousCmd != nil {
			// Create pipe between previous and current command
			pipeIn, err := previousCmd.StdoutPipe()
			if err != nil {
				return -1, "", "", fmt.Errorf("failed to create stdout pipe: %v", err)
			}
			cmd.Stdin = pipeIn
		}

		previousCmd = cmd // Move to the next command
	}

	// Capture output of the last command
	cmds[len(cmds)-1].Stdout = &stdoutBuf

	// Start and wait for all commands
	for _, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			return -1, "", stderrBuf.String(), err
		}
	}

	// Ensure all commands complete execution
	for _, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			return -1, "", stderrBuf.String(), err
		}
	}

	// Get the exit code of the last command
	exitCode := 0
	if exitErr, ok := cmds[len(cmds)-1].ProcessState.Sys().(interface{ ExitCode() int }); ok {
		exitCode = exitErr.ExitCode()
	}

	return exitCode, strings.TrimRight(stdoutBuf.String(), "\n"), strings.TrimRight(stderrBuf.String(), "\n"), nil
}

func GetScreenWidth() int {
	var (
		err    error
		length int = 132
		width  uint
	)
	width, err = terminal.Width()
	if err != nil {
		return length
	}

	return int(width)
}

func HasColorSupport() (bool, int) {
	returncode, stdout, _, err := ExecutePipeline("/usr/bin/tput colors")
	if err != nil || returncode != 0 {
		return false, 0
	}
	colors, err := strconv.Atoi(stdout)
	if err != nil {
		return false, 0
	}
	if colors < 8 {
		return false, 0
	}
	return true, colors
}
