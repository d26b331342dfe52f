package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func readInput() ([]byte, error) {
	data, err := io.ReadAll(bufio.NewReaderSize(stdin, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no input on STDIN")
	}
	return data, nil
}

func writeOutput(data []byte) error {
	w := bufio.NewWriterSize(stdout, 1024*1024)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
