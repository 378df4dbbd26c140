package engine_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"uicss/engine"
)

func TestResult_Dump(t *testing.T) {
	res, err := engine.New(bare(), zap.NewNop()).Generate(context.Background(), []string{"divide-muted/25", "nope"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := "pass " + res.ID.String() + "\n" +
		"  properties (1)\n" +
		`    --un-divide-opacity: "<percentage> 100%"` + "\n" +
		"  utilities (1)\n" +
		"    divide-muted/25 [default]\n" +
		`      selector: ":where(&>:not(:last-child))"` + "\n" +
		`      parent 0: ".divide-muted\\/25"` + "\n" +
		`      border-color: "` + mix("var(--ui-border-muted)", "25%") + `"` + "\n" +
		"  unmatched (1)\n" +
		`    token: "nope"` + "\n"
	if got := res.Dump(); got != want {
		t.Errorf("Dump() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
