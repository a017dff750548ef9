package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgectl/edgectl/edgesql"
	"github.com/edgectl/edgectl/filter"
)

var queryFile string

// databaseCmd groups edge database operations
var databaseCmd = &cobra.Command{
	Use:     "database",
	Aliases: []string{"db"},
	Short:   "Manage edge databases",
}

var databaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases",
	RunE:  runDatabaseList,
}

var databaseCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatabaseCreate,
}

var databaseGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatabaseGet,
}

var databaseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatabaseDelete,
}

var databaseQueryCmd = &cobra.Command{
	Use:   "query <id> [statement...]",
	Short: "Execute a statement batch against a database",
	Long: `Execute SQL statements against an edge database. Statements are taken
from the arguments, or from a file with --file (one statement per line,
blank lines and lines starting with -- are skipped).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDatabaseQuery,
}

func init() {
	rootCmd.AddCommand(databaseCmd)
	databaseCmd.AddCommand(databaseListCmd)
	databaseCmd.AddCommand(databaseCreateCmd)
	databaseCmd.AddCommand(databaseGetCmd)
	databaseCmd.AddCommand(databaseDeleteCmd)
	databaseCmd.AddCommand(databaseQueryCmd)

	databaseListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Status == \"created\"'")
	databaseListCmd.Flags().IntVar(&pageFlag, "page", 0, "page number")
	databaseListCmd.Flags().IntVar(&sizeFlag, "page-size", 0, "page size")

	databaseQueryCmd.Flags().StringVar(&queryFile, "file", "", "read statements from file")
}

func runDatabaseList(cmd *cobra.Command, args []string) error {
	page, err := sqlClient.ListDatabases(context.Background(), listOptions())
	if err != nil {
		return err
	}

	databases := page.Results
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return err
		}
		var kept []edgesql.Database
		for _, db := range databases {
			env := map[string]any{
				"ID":        int(db.ID),
				"Name":      db.Name,
				"Status":    db.Status,
				"IsActive":  db.IsActive,
				"CreatedAt": db.CreatedAt,
			}
			if f.Match(env) {
				kept = append(kept, db)
			}
		}
		databases = kept
	}

	if len(databases) == 0 {
		fmt.Println("No databases found.")
		return nil
	}

	fmt.Printf("%-8s %-30s %-12s %s\n", "ID", "NAME", "STATUS", "CREATED")
	fmt.Println(strings.Repeat("-", 75))
	for _, db := range databases {
		fmt.Printf("%-8d %-30s %-12s %s\n", db.ID, db.Name, db.Status, db.CreatedAt)
	}
	fmt.Printf("\n%d of %d databases\n", len(databases), page.Count)
	return nil
}

func runDatabaseCreate(cmd *cobra.Command, args []string) error {
	db, err := sqlClient.CreateDatabase(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Created database %s (id %d, status %s)\n", db.Name, db.ID, db.Status)
	return nil
}

func runDatabaseGet(cmd *cobra.Command, args []string) error {
	id, err := parseDatabaseID(args[0])
	if err != nil {
		return err
	}

	db, err := sqlClient.GetDatabase(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("ID:         %d\n", db.ID)
	fmt.Printf("Name:       %s\n", db.Name)
	fmt.Printf("Client ID:  %s\n", db.ClientID)
	fmt.Printf("Status:     %s\n", db.Status)
	fmt.Printf("Active:     %t\n", db.IsActive)
	fmt.Printf("Created:    %s\n", db.CreatedAt)
	fmt.Printf("Updated:    %s\n", db.UpdatedAt)
	return nil
}

func runDatabaseDelete(cmd *cobra.Command, args []string) error {
	id, err := parseDatabaseID(args[0])
	if err != nil {
		return err
	}

	if err := sqlClient.DeleteDatabase(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted database %d\n", id)
	return nil
}

func runDatabaseQuery(cmd *cobra.Command, args []string) error {
	id, err := parseDatabaseID(args[0])
	if err != nil {
		return err
	}

	statements := args[1:]
	if queryFile != "" {
		fromFile, err := readStatements(queryFile)
		if err != nil {
			return err
		}
		statements = append(statements, fromFile...)
	}
	if len(statements) == 0 {
		return fmt.Errorf("no statements provided")
	}

	results, err := sqlClient.Query(context.Background(), id, statements)
	if err != nil {
		return err
	}

	for i, result := range results {
		if result.Error != "" {
			fmt.Printf("statement %d: error: %s\n", i+1, result.Error)
			continue
		}
		if result.Results == nil {
			fmt.Printf("statement %d: ok\n", i+1)
			continue
		}

		fmt.Println(strings.Join(result.Results.Columns, " | "))
		for _, row := range result.Results.Rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				cells = append(cells, fmt.Sprintf("%v", cell))
			}
			fmt.Println(strings.Join(cells, " | "))
		}
		fmt.Printf("(%d rows)\n\n", len(result.Results.Rows))
	}
	return nil
}

func parseDatabaseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid database id: %s", arg)
	}
	return id, nil
}

func readStatements(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statements file: %w", err)
	}

	var statements []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		statements = append(statements, line)
	}
	return statements, nil
}
