package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// NewAddCmd creates the 'add' command for seeding knowledge entries.
//
// Supports two modes:
// 1. Flags: one entry with --question, --answer, and optional metadata
// 2. --file: bulk JSON import of an entry array
func NewAddCmd() *cobra.Command {
	var (
		configPath string
		question   string
		answer     string
		category   string
		state      string
		tags       []string
		personas   []string
		priority   string
		file       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add knowledge entries - flags for one, --file for bulk",
		Long: `Add one or more entries to the knowledge base.

Entries persist to SQLite and are immediately searchable. Bulk files
contain a JSON array of entries; entries without an id get one
assigned.`,
		Example: `  # Single entry
  fact-engine add \
    --question "How much does a Georgia contractor license cost?" \
    --answer "The Georgia contractor license costs $200 for the application..." \
    --category cost --state GA --tag georgia --tag cost --priority high

  # Bulk import
  fact-engine add --file ./knowledge.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if file != "" {
				return runAddFile(rt, file)
			}

			if question == "" || answer == "" {
				return fmt.Errorf("--question and --answer are required (or use --file)")
			}

			entry := knowledge.Entry{
				Question: question,
				Answer:   answer,
				Category: knowledge.Category(category),
				State:    strings.ToUpper(state),
				Tags:     tags,
				Priority: knowledge.Priority(priority),
			}
			for _, p := range personas {
				entry.Personas = append(entry.Personas, knowledge.Persona(p))
			}
			if entry.Category != "" && !entry.Category.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			stored, err := putEntry(rt, entry)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added entry %d: %s\n", stored.ID, stored.Question)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Canonical question text")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text")
	cmd.Flags().StringVar(&category, "category", "", "Entry category")
	cmd.Flags().StringVar(&state, "state", "", "Two-letter state code")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Keyword tag (repeatable)")
	cmd.Flags().StringArrayVar(&personas, "persona", nil, "Target persona (repeatable)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, normal, low")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with an array of entries")

	return cmd
}

// runAddFile bulk-imports a JSON array of entries.
func runAddFile(rt *runtime, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []knowledge.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries found in %s", path)
	}

	for i, entry := range entries {
		if entry.Question == "" || entry.Answer == "" {
			return fmt.Errorf("entry %d: question and answer are required", i)
		}
		if entry.Category != "" && !entry.Category.Valid() {
			return fmt.Errorf("entry %d: unknown category %q", i, entry.Category)
		}
		if _, err := putEntry(rt, entry); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	fmt.Printf("✓ Imported %d entries from %s\n", len(entries), path)
	return nil
}

// putEntry writes through: persistence first (to get the assigned id),
// then the in-memory store.
func putEntry(rt *runtime, entry knowledge.Entry) (knowledge.Entry, error) {
	stored, err := rt.db.UpsertEntry(entry)
	if err != nil {
		return knowledge.Entry{}, fmt.Errorf("failed to persist entry: %w", err)
	}
	return rt.store.Put(stored), nil
}
