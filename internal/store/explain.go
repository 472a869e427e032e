// internal/store/explain.go
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/datebench/internal/benchmark"
	"github.com/xeipuuv/gojsonschema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Commander runs database commands; *mongo.Database satisfies it.
type Commander interface {
	RunCommand(ctx context.Context, runCommand interface{}, opts ...*options.RunCmdOptions) *mongo.SingleResult
}

// explainSchema is the minimum shape an executionStats explain must have.
var explainSchema = map[string]any{
	"type":     "object",
	"required": []any{"executionStats"},
	"properties": map[string]any{
		"executionStats": map[string]any{
			"type":     "object",
			"required": []any{"executionTimeMillis"},
			"properties": map[string]any{
				"executionTimeMillis": map[string]any{"type": "number", "minimum": 0},
				"nReturned":           map[string]any{"type": "number"},
				"totalKeysExamined":   map[string]any{"type": "number"},
				"totalDocsExamined":   map[string]any{"type": "number"},
			},
		},
	},
}

var explainValidator, explainSchemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(explainSchema))

type explainOutput struct {
	QueryPlanner struct {
		WinningPlan bson.Raw `bson:"winningPlan"`
	} `bson:"queryPlanner"`
	ExecutionStats struct {
		ExecutionTimeMillis int64 `bson:"executionTimeMillis"`
		NReturned           int64 `bson:"nReturned"`
		TotalKeysExamined   int64 `bson:"totalKeysExamined"`
		TotalDocsExamined   int64 `bson:"totalDocsExamined"`
	} `bson:"executionStats"`
}

// explainFind runs a find explain with executionStats verbosity.
func explainFind(ctx context.Context, cmd Commander, collection string, filter any) (benchmark.Measurement, error) {
	if cmd == nil {
		return benchmark.Measurement{}, ErrNotBound
	}
	if filter == nil {
		filter = bson.D{}
	}

	command := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: collection},
			{Key: "filter", Value: filter},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	raw, err := cmd.RunCommand(ctx, command).Raw()
	if err != nil {
		return benchmark.Measurement{}, fmt.Errorf("explain find on %s: %w", collection, err)
	}
	return parseExplain(raw)
}

// parseExplain validates raw explain output and extracts its timings.
func parseExplain(raw bson.Raw) (benchmark.Measurement, error) {
	if err := validateExplain(raw); err != nil {
		return benchmark.Measurement{}, err
	}

	var out explainOutput
	if err := bson.Unmarshal(raw, &out); err != nil {
		return benchmark.Measurement{}, fmt.Errorf("%w: %v", ErrMalformedExplain, err)
	}

	return benchmark.Measurement{
		Millis:       float64(out.ExecutionStats.ExecutionTimeMillis),
		Returned:     out.ExecutionStats.NReturned,
		KeysExamined: out.ExecutionStats.TotalKeysExamined,
		DocsExamined: out.ExecutionStats.TotalDocsExamined,
		Plan:         planStages(out.QueryPlanner.WinningPlan),
	}, nil
}

func validateExplain(raw bson.Raw) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty document", ErrMalformedExplain)
	}
	doc, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedExplain, err)
	}

	if explainSchemaErr != nil {
		return fmt.Errorf("compile explain schema: %w", explainSchemaErr)
	}
	result, err := explainValidator.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedExplain, err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrMalformedExplain, strings.Join(problems, "; "))
	}
	return nil
}

// planStages renders the winning plan as its stage chain, outermost first,
// e.g. "FETCH > IXSCAN".
func planStages(plan bson.Raw) string {
	if len(plan) == 0 {
		return ""
	}
	if nested, ok := plan.Lookup("queryPlan").DocumentOK(); ok {
		plan = nested
	}

	var stages []string
	for current := plan; len(current) > 0; {
		stage, ok := current.Lookup("stage").StringValueOK()
		if !ok {
			break
		}
		stages = append(stages, stage)
		next, ok := current.Lookup("inputStage").DocumentOK()
		if !ok {
			break
		}
		current = next
	}
	return strings.Join(stages, " > ")
}
