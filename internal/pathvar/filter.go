package pathvar

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects entries with a boolean expression. Expressions see:
//   - entry: the entry string
//   - index: the entry's position in the original list
//   - exists: whether the entry names an existing directory
type Filter struct {
	program *vm.Program
}

// CompileFilter compiles an expression string once for reuse. An empty
// expression matches everything.
func CompileFilter(code string) (*Filter, error) {
	if code == "" {
		code = "true"
	}

	program, err := expr.Compile(code, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	return &Filter{program: program}, nil
}

// Match evaluates the filter against one entry.
func (f *Filter) Match(entry string, index int) (bool, error) {
	output, err := expr.Run(f.program, map[string]any{
		"entry":  entry,
		"index":  index,
		"exists": dirExists(entry),
	})
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed for entry %q: %w", entry, err)
	}

	// expr.AsBool() ensures output is always bool
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to boolean, got %T", output)
	}

	return result, nil
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
