package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightblue-platform/lightblue-client-go/core"
)

func (a *App) newInsertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert ENTITY VERSION",
		Short: "Insert documents of a versioned entity",
		Long: `Insert documents of a particular version of an entity.

--data takes the documents as JSON, from a file with @path, or from stdin
with -. Alternatively --request supplies a complete request body verbatim,
in which case --data and --projection are ignored.

Examples:
  lbdata insert user 1.0 --data '[{"login":"jdoe"}]'
  lbdata insert user 1.0 --data @users.json --projection '{"field":"_id"}'
  cat users.json | lbdata insert user 1.0 --data -`,
		Args: cobra.ExactArgs(2),
		RunE: a.runInsert,
	}

	cmd.Flags().StringVar(&a.insertData, "data", "", "documents JSON, @file, or - for stdin")
	cmd.Flags().StringVar(&a.insertProjection, "projection", "", "projection JSON")
	cmd.Flags().StringVar(&a.insertRequest, "request", "", "complete request body JSON, sent verbatim")

	return cmd
}

func (a *App) runInsert(cmd *cobra.Command, args []string) error {
	if a.url == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("service URL required: use --url or set url in config"))
	}
	if a.insertData == "" && a.insertRequest == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("must provide --data or --request"))
	}

	data, err := a.readDataFlag()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	projection, err := parseJSONFlag("projection", a.insertProjection)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	ctx := cmd.Context()
	conn, err := a.connect(ctx, a.url, a.connectionOptions()...)
	if err != nil {
		return a.handleRequestError(err)
	}
	defer conn.Close()

	req := conn.Insert(args[0], args[1])
	if a.insertRequest != "" {
		req.Request(core.Raw(a.insertRequest))
	}
	if data != nil {
		req.Data(data)
	}
	if projection != nil {
		req.Projection(projection)
	}

	result, err := req.Execute(ctx)
	if err != nil {
		return a.handleRequestError(err)
	}

	return a.printJSON(result)
}

// readDataFlag resolves the --data flag: inline JSON, @file, or - for stdin.
func (a *App) readDataFlag() (any, error) {
	raw := a.insertData
	if raw == "" {
		return nil, nil
	}

	switch {
	case raw == "-":
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read data from stdin: %w", err)
		}
		raw = string(b)
	case strings.HasPrefix(raw, "@"):
		b, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		raw = string(b)
	}

	return parseJSONFlag("data", raw)
}
