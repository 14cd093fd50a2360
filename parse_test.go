package reltime

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type caseFile struct {
	Base  string     `yaml:"base"`
	Cases []exprCase `yaml:"cases"`
}

type exprCase struct {
	Name  string `yaml:"name"`
	Expr  string `yaml:"expr"`
	Base  string `yaml:"base,omitempty"`
	Want  string `yaml:"want,omitempty"`
	Error string `yaml:"error,omitempty"`
}

func loadCases(t *testing.T) caseFile {
	t.Helper()
	data, err := os.ReadFile("testdata/cases.yaml")
	require.NoError(t, err)

	var cf caseFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	require.NoError(t, decoder.Decode(&cf))
	require.NotEmpty(t, cf.Cases)
	return cf
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err, "bad timestamp %q", s)
	return v
}

func TestParseCases(t *testing.T) {
	cf := loadCases(t)
	for _, tc := range cf.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			base := cf.Base
			if tc.Base != "" {
				base = tc.Base
			}
			p := New(WithClock(FixedClock(mustTime(t, base))))

			got, err := p.Parse(tc.Expr)
			switch tc.Error {
			case "":
				require.NoError(t, err)
				want := mustTime(t, tc.Want)
				assert.True(t, want.Equal(got), "want %s, got %s", want.Format(time.RFC3339Nano), got.Format(time.RFC3339Nano))
				assert.Equal(t, time.UTC, got.Location())
			case "invalid_expression":
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidExpression)
				var syntaxErr *SyntaxError
				assert.ErrorAs(t, err, &syntaxErr)
			case "out_of_range":
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidExpression)
				var rangeErr *RangeError
				assert.ErrorAs(t, err, &rangeErr)
				assert.True(t, got.IsZero())
			default:
				t.Fatalf("unknown error kind %q", tc.Error)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	base := time.Date(2022, time.January, 8, 9, 0, 0, 0, time.UTC)
	p := New(WithClock(FixedClock(base)))

	for _, v := range []any{nil, 123, 1.5, []byte("now()"), time.Now()} {
		_, err := p.ParseValue(v)
		assert.ErrorIs(t, err, ErrInvalidArgumentType, "%T", v)
		assert.False(t, errors.Is(err, ErrInvalidExpression))

		var argErr *ArgumentTypeError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, v, argErr.Value)
	}

	got, err := p.ParseValue("now()+1h")
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Hour), got)

	_, err = p.ParseValue("test")
	assert.ErrorIs(t, err, ErrInvalidExpression)
}

type countingClock struct {
	calls atomic.Int32
	t     time.Time
}

func (c *countingClock) Now() time.Time {
	n := c.calls.Add(1)
	return c.t.Add(time.Duration(n) * time.Hour)
}

func TestParseReadsClockOnce(t *testing.T) {
	clock := &countingClock{t: time.Date(2022, time.January, 8, 8, 0, 0, 0, time.UTC)}
	p := New(WithClock(clock))

	got, err := p.Parse("now()+1d-1d+1h-1h+1m-1m@s")
	require.NoError(t, err)
	assert.Equal(t, int32(1), clock.calls.Load())
	assert.Equal(t, time.Date(2022, time.January, 8, 9, 0, 0, 0, time.UTC), got)
}

func TestParseInvalidDoesNotReadClock(t *testing.T) {
	clock := &countingClock{}
	p := New(WithClock(clock))

	_, err := p.Parse("now()+5z")
	require.Error(t, err)
	assert.Equal(t, int32(0), clock.calls.Load())
}

func TestParseWhitespaceInsensitive(t *testing.T) {
	p := New(WithClock(FixedClock(time.Date(2022, time.May, 17, 13, 14, 15, 0, time.UTC))))

	a, err := p.Parse("now()+1d@mon")
	require.NoError(t, err)
	b, err := p.Parse("now ( ) + 1 d @ mon")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseConcurrent(t *testing.T) {
	base := time.Date(2022, time.January, 8, 9, 0, 0, 0, time.UTC)
	want := time.Date(2022, time.January, 18, 21, 0, 0, 0, time.UTC)
	p := New(WithClock(FixedClock(base)))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Parse("now()+10d+12h")
			if err != nil {
				errs <- err
				return
			}
			if !got.Equal(want) {
				errs <- errors.New("unexpected result " + got.String())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParseLogsDebugRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(
		WithClock(FixedClock(time.Date(2022, time.January, 8, 9, 0, 0, 0, time.UTC))),
		WithLogger(logger),
	)

	_, err := p.Parse("now() - 1 y @ mon")
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "evaluated expression")
	assert.Contains(t, out, "expr=now()-1y@mon")
	assert.Contains(t, out, "offsets=1")

	buf.Reset()
	_, err = p.Parse("now()@x")
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestParseSystemClock(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Millisecond)
	got, err := Parse("now()")
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseValue(42)
	assert.ErrorIs(t, err, ErrInvalidArgumentType)
}

func TestParseOutOfRangeBase(t *testing.T) {
	p := New(WithClock(FixedClock(time.Date(300000, time.January, 1, 0, 0, 0, 0, time.UTC))))
	_, err := p.Parse("now()")
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.ErrorIs(t, err, ErrInvalidExpression)
	assert.Nil(t, rangeErr.Offset)
}
