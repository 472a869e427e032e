package datebench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/mwiater/datebench/internal/schema"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExecuteSeedSharesTimestamps(t *testing.T) {
	cfg := appconfig.Defaults()
	cfg.SeedCount = 25
	cfg.SeedBatchSize = 10
	cfg.SeedWorkers = 1
	cfg.RandomSeed = 7

	b := newFakeBackend()
	var out bytes.Buffer
	summaries, err := executeSeed(context.Background(), &out, &cfg, b)
	if err != nil {
		t.Fatalf("executeSeed error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	plain := b.targets[schema.PlainDate.Collection].docs
	native := b.targets[schema.NormalDate.Collection].docs
	if len(plain) != 25 || len(native) != 25 {
		t.Fatalf("expected 25 documents each, got %d and %d", len(plain), len(native))
	}

	// a single worker inserts batches in order, so both sequences line up
	for i := range plain {
		want := schema.FormatPlain(nativeTime(t, native[i]))
		if got := plainString(t, plain[i]); got != want {
			t.Fatalf("document %d: plain %q, native %q", i, got, want)
		}
	}

	if !strings.Contains(out.String(), "Plain Date: inserted 25 documents") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestExecuteSeedSkipsFullCollections(t *testing.T) {
	cfg := appconfig.Defaults()
	cfg.SeedCount = 5
	cfg.Only = []string{"plain"}

	b := newFakeBackend()
	b.targets[schema.PlainDate.Collection].existing = 5

	var out bytes.Buffer
	summaries, err := executeSeed(context.Background(), &out, &cfg, b)
	if err != nil {
		t.Fatalf("executeSeed error: %v", err)
	}
	if len(summaries) != 1 || !summaries[0].Skipped {
		t.Fatalf("expected one skipped summary, got %+v", summaries)
	}
	if len(b.targets[schema.PlainDate.Collection].docs) != 0 {
		t.Fatalf("expected no inserts into a full collection")
	}
	if len(b.targets[schema.NormalDate.Collection].docs) != 0 {
		t.Fatalf("expected native collection to be excluded")
	}
}

func TestRunSeedConnectionFailureIsFatal(t *testing.T) {
	errConnect := errors.New("server selection timeout")
	b := newFakeBackend()
	attempts := 0
	prev := openBackend
	openBackend = connectFailure(b, errConnect, &attempts)
	t.Cleanup(func() { openBackend = prev })

	cfg := appconfig.Defaults()
	cfg.SeedCount = 10
	var out bytes.Buffer
	err := runSeed(context.Background(), &out, &cfg)
	if !errors.Is(err, errConnect) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single connection attempt, got %d", attempts)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
	for name, target := range b.targets {
		if len(target.docs) != 0 {
			t.Fatalf("expected no inserts into %s, got %d", name, len(target.docs))
		}
	}
}

func TestSeedProgressLogsWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	p := newSeedProgress(&out, false)
	p.update("Plain Date", 10, 20)
	p.finish()
	if out.Len() != 0 {
		t.Fatalf("expected no bar output off a terminal, got %q", out.String())
	}

	p = newSeedProgress(&out, true)
	p.update("Plain Date", 10, 20)
	p.finish()
	if !strings.Contains(out.String(), "10/20") {
		t.Fatalf("expected bar counts, got %q", out.String())
	}
}

func plainString(t *testing.T, doc any) string {
	t.Helper()
	value := fieldValue(t, doc)
	s, ok := value.(string)
	if !ok {
		t.Fatalf("expected string date, got %T", value)
	}
	return s
}

func nativeTime(t *testing.T, doc any) time.Time {
	t.Helper()
	value := fieldValue(t, doc)
	ts, ok := value.(time.Time)
	if !ok {
		t.Fatalf("expected time date, got %T", value)
	}
	return ts
}

func fieldValue(t *testing.T, doc any) any {
	t.Helper()
	d, ok := doc.(bson.D)
	if !ok || len(d) != 1 || d[0].Key != schema.DateField {
		t.Fatalf("unexpected document %v", doc)
	}
	return d[0].Value
}
