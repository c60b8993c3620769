package common

import (
	"context"
	"encoding/json"
	"fmt"

	"skillmatch/internal/errors"
)

// BuildInputFunc defines how to build the typed engine input from the raw
// contents of the input files
type BuildInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// EngineOperationFunc is the generic signature of an engine operation
type EngineOperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunEngineCommand encapsulates the common logic for file-based CLI commands:
// read and validate the input files, build the typed input, run the
// operation, format and write the result.
func RunEngineCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	buildInput BuildInputFunc[Input],
	operation EngineOperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	input, err := buildInput(contents)
	if err != nil {
		return fmt.Errorf("failed to build input from file contents: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}

// DecodeJSON decodes one input file's contents into the target type with a
// wrapped, code-carrying error
func DecodeJSON[T any](content, description string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return out, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to parse %s as JSON", description), err)
	}
	return out, nil
}
