/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_writer.go
Description: Utility for writing run results to the metrics directory.
Handles timestamped, session-tagged and kind-specific subdirectory naming.
Ensures directories exist and writes JSON files for easy analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/core"
)

// WriteMetricsResult writes a result to <metricsDir>/<kind>/ tagged with a timestamp and ID
func WriteMetricsResult(metricsDir string, kind string, id string, result interface{}) (string, error) {
	dir := filepath.Join(metricsDir, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create metrics directory")
	}

	// Generate filename: 2024-06-11_01-30-00_learn_<session>.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%s.json", timestamp, kind, id)
	filePath := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal result")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write metrics file")
	}

	return filePath, nil
}

// WriteRunStats writes the statistics of a finished run
func WriteRunStats(metricsDir string, stats *core.RunStats) (string, error) {
	return WriteMetricsResult(metricsDir, string(stats.Mode), stats.SessionID, stats)
}
