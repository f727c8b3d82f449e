/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_internal_test.go
Description: Internal tests for the logger's file handling.
*/

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCloseReportsFileError tests that a failing log file close is returned
func TestCloseReportsFileError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithOutput(&LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		OutputDir: t.TempDir(),
		MaxFiles:  5,
	}, &buf)
	require.NoError(t, err)
	require.NotNil(t, logger.fileHandle)

	require.NoError(t, logger.fileHandle.Close())

	err = logger.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close log file")
	assert.Nil(t, logger.fileHandle)
	assert.NoError(t, logger.Close())
}
