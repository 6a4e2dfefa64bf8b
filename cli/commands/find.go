package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightblue-platform/lightblue-client-go/core"
)

func (a *App) newFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find ENTITY VERSION",
		Short: "Find documents of a versioned entity",
		Long: `Find documents of a particular version of an entity.

With no filter flags the whole entity is fetched. Filter flags take JSON
values and merge into the request; --request supplies a complete request
body verbatim, in which case the filter flags are ignored.

Examples:
  lbdata find user 1.0
  lbdata find user 1.0 --query '{"field":"login","op":"=","rvalue":"jdoe"}'
  lbdata find user 1.0 --range 0:49 --sort '{"login":"$asc"}'
  lbdata find user 1.0 --request '{"query":{"field":"login","op":"=","rvalue":"jdoe"}}'`,
		Args: cobra.ExactArgs(2),
		RunE: a.runFind,
	}

	cmd.Flags().StringVar(&a.findProjection, "projection", "", "projection JSON")
	cmd.Flags().StringVar(&a.findQuery, "query", "", "query JSON")
	cmd.Flags().StringVar(&a.findRange, "range", "", "result window as FROM:TO, e.g. 0:49")
	cmd.Flags().StringVar(&a.findSort, "sort", "", "sort JSON")
	cmd.Flags().StringVar(&a.findRequest, "request", "", "complete request body JSON, sent verbatim")

	return cmd
}

func (a *App) runFind(cmd *cobra.Command, args []string) error {
	if a.url == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("service URL required: use --url or set url in config"))
	}

	projection, err := parseJSONFlag("projection", a.findProjection)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	query, err := parseJSONFlag("query", a.findQuery)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	sort, err := parseJSONFlag("sort", a.findSort)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	rng, err := parseRangeFlag(a.findRange)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	ctx := cmd.Context()
	conn, err := a.connect(ctx, a.url, a.connectionOptions()...)
	if err != nil {
		return a.handleRequestError(err)
	}
	defer conn.Close()

	req := conn.Find(args[0], args[1])
	if a.findRequest != "" {
		req.Request(core.Raw(a.findRequest))
	}
	if projection != nil {
		req.Projection(projection)
	}
	if query != nil {
		req.Query(query)
	}
	if rng != nil {
		req.Range(rng)
	}
	if sort != nil {
		req.Sort(sort)
	}

	result, err := req.Execute(ctx)
	if err != nil {
		return a.handleRequestError(err)
	}

	return a.printJSON(result)
}
