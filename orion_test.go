package orion

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
)

func TestBasicUsage(t *testing.T) {
	result, err := Eval(context.Background(), `(def x 5) (+ x 3)`)
	require.Nil(t, err)
	value, ok := result.Value()
	require.True(t, ok)
	require.Equal(t, object.NewInt(8), value)

	x, ok := result.Lookup("x")
	require.True(t, ok)
	require.Equal(t, object.NewInt(5), x)

	_, ok = result.Lookup("missing")
	require.False(t, ok)
}

func TestBindings(t *testing.T) {
	result, err := Eval(context.Background(), `(def a 1) (def b "two") (def c [1.5 ()])`)
	require.Nil(t, err)
	require.Equal(t, map[string]any{
		"a": int32(1),
		"b": "two",
		"c": []any{float32(1.5), nil},
	}, result.Bindings())
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		source   string
		category errors.Category
	}{
		{`(def x`, errors.Syntax},
		{`y`, errors.Resolution},
		{`(def a (print 1))`, errors.Purity},
		{`(/ 4 0)`, errors.Type},
		{`(def f (λ (a) a)) (f)`, errors.Arity},
		{`(enum A X) (enum B X)`, errors.Duplicate},
		{`(def f (λ (n) (f n))) (f 0)`, errors.ResourceExhaustion},
	}
	for _, tt := range tests {
		_, err := Eval(context.Background(), tt.source, WithMaxCallDepth(64))
		require.Error(t, err, tt.source)
		require.True(t, errors.Is(err, tt.category), "%s: %v", tt.source, err)
	}
}

func TestStdio(t *testing.T) {
	var out bytes.Buffer
	_, err := Eval(context.Background(), `(def! n (input "? ")) (print (concat "hello " n))`,
		WithStdout(&out), WithStdin(strings.NewReader("world\n")))
	require.Nil(t, err)
	require.Equal(t, "? hello world\n", out.String())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/lib/math.orn", []byte("(def sq (λ (n) (* n n)))"), 0o644))
	result, err := Eval(context.Background(), `(load "math.orn") (sq 7)`,
		WithFS(fs), WithLibPath("/lib"), WithFilename("main.orn"))
	require.Nil(t, err)
	value, _ := result.Value()
	require.Equal(t, object.NewInt(49), value)
}

func TestConcurrentRuns(t *testing.T) {
	code, err := Compile(`(def f (λ (a b) (+ a b))) (f 20 22)`)
	require.Nil(t, err)

	var wg sync.WaitGroup
	results := make([]object.Object, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := Run(context.Background(), code)
			if err == nil {
				results[i], _ = result.Value()
			}
		}(i)
	}
	wg.Wait()
	for _, value := range results {
		require.Equal(t, object.NewInt(42), value)
	}
}

func TestDocs(t *testing.T) {
	docs := Docs(nil)
	require.Len(t, docs, 17)
	require.Equal(t, "+", docs[0].Name)
	require.Equal(t, 2, docs[0].Arity)
	require.Equal(t, "dbg", docs[14].Name)
	require.True(t, docs[14].Impure)
	for _, doc := range docs {
		require.NotEmpty(t, doc.Description, doc.Name)
	}
}
