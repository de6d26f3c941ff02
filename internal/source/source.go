// Package source produces the option list the demo program selects from.
package source

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"vselect/internal/config"
	"vselect/internal/domain"
)

// DisabledPrefix marks a disabled option in an option file
const DisabledPrefix = "!"

// Load returns the options settings points at: the lines of settings.File,
// or settings.Count generated options when no file is given
func Load(ctx context.Context, settings config.SourceSettings) ([]domain.Option[string], error) {
	if settings.File != "" {
		return LoadFile(ctx, settings.File)
	}
	return Generate(settings.Count), nil
}

// Generate returns n options labelled "Option 000001" and up
func Generate(n int) []domain.Option[string] {
	opts := make([]domain.Option[string], n)
	for i := range opts {
		label := fmt.Sprintf("Option %06d", i+1)
		opts[i] = domain.Option[string]{Value: label, Label: label}
	}
	return opts
}

// LoadFile reads one option per line. Blank lines and lines starting with
// "#" are skipped, a leading "!" disables the option. The label doubles as
// the value, so repeated labels are dropped.
func LoadFile(ctx context.Context, path string) ([]domain.Option[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open option file: %w", err)
	}
	defer f.Close()

	var opts []domain.Option[string]
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		disabled := strings.HasPrefix(line, DisabledPrefix)
		label := strings.TrimSpace(strings.TrimPrefix(line, DisabledPrefix))
		if label == "" {
			continue
		}
		if seen[label] {
			log.Printf("source: %s:%d duplicate option %q skipped", path, lineNo, label)
			continue
		}
		seen[label] = true
		opts = append(opts, domain.Option[string]{Value: label, Label: label, Disabled: disabled})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read option file: %w", err)
	}

	log.Printf("source: loaded %d options from %s", len(opts), path)
	return opts, nil
}
