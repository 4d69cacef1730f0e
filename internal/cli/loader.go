package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/roach88/arbiter/internal/oracle"
)

// readTextArg resolves a text argument: a leading '@' loads the rest as a
// file path, anything else is taken literally.
func readTextArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	data, err := os.ReadFile(arg[1:])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg[1:], err)
	}
	return string(data), nil
}

// readPromptFile loads a prompt template from a file path, or treats the
// argument as inline prompt text when no such file exists.
func readPromptFile(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

// loadConstraints reads a constraint records file produced by extract.
func loadConstraints(path string) ([]oracle.ConstraintRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read constraints file: %w", err)
	}
	var records []oracle.ConstraintRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse constraints file: %w", err)
	}
	return records, nil
}

// newOracleClient builds the oracle client from the environment.
func newOracleClient() (oracle.Client, error) {
	return oracle.NewOpenAIClientFromEnv()
}
