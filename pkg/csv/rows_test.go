package csv_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shapestone/shape-csvtok/pkg/csv"
	"github.com/shapestone/shape-csvtok/pkg/metrics"
)

func collect(t *testing.T, rows *csv.Rows) [][]string {
	t.Helper()
	var out [][]string
	for rows.Next() {
		out = append(out, rows.Row().Values())
	}
	require.NoError(t, rows.Err())
	return out
}

func TestEnumerate_Header(t *testing.T) {
	rows, err := csv.EnumerateString("h1,h2\nv1,v2\nv3,v4", csv.Options{HasHeader: true})
	require.NoError(t, err)

	h, ok := rows.Header()
	require.True(t, ok)
	assert.Equal(t, []string{"h1", "h2"}, h.Values())
	assert.Equal(t, -1, h.Index())
	assert.Equal(t, 1, h.Line())

	assert.Equal(t, [][]string{{"v1", "v2"}, {"v3", "v4"}}, collect(t, rows))
}

func TestEnumerate_MixedTerminators(t *testing.T) {
	for _, mode := range []csv.SegmentationMode{csv.SegmentAuto, csv.SegmentPrescan, csv.SegmentIncremental} {
		t.Run(mode.String(), func(t *testing.T) {
			rows, err := csv.EnumerateString("a,b\r\n1,2\n3,4\r5,6", csv.Options{Segmentation: mode})
			require.NoError(t, err)
			got := collect(t, rows)
			require.Len(t, got, 4)
			assert.Equal(t, []string{"5", "6"}, got[3])
		})
	}
}

func TestEnumerate_EdgeBuffers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header bool
		want   [][]string
	}{
		{"empty", "", false, nil},
		{"empty with header", "", true, nil},
		{"header only", "a,b\n", true, nil},
		{"single line no terminator", "x", false, [][]string{{"x"}}},
		{"trailing terminator", "x\n", false, [][]string{{"x"}}},
		{"blank line", "a\n\nb", false, [][]string{{"a"}, {""}, {"b"}}},
		{"quoted newline is split", "\"p\nq\",r", false, [][]string{{"p"}, {`q"`, "r"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := csv.EnumerateString(tt.input, csv.Options{HasHeader: tt.header})
			require.NoError(t, err)
			assert.Equal(t, tt.want, collect(t, rows))
		})
	}
}

func TestEnumerate_NilBuffer(t *testing.T) {
	_, err := csv.Enumerate(nil, csv.Options{})
	assert.ErrorIs(t, err, csv.ErrNilBuffer)

	_, err = csv.ParseAll(nil, csv.Options{})
	assert.ErrorIs(t, err, csv.ErrNilBuffer)
}

func TestEnumerate_InvalidOptions(t *testing.T) {
	_, err := csv.Enumerate([]byte("a"), csv.Options{Delimiter: '\r'})
	var oe *csv.OptionsError
	assert.ErrorAs(t, err, &oe)
}

func TestEnumerate_ModeResolution(t *testing.T) {
	small := []byte("a,b\n")
	large := bytes.Repeat([]byte("0123456789,abcdef\n"), csv.PrescanMin/18+1)

	tests := []struct {
		name string
		buf  []byte
		mode csv.SegmentationMode
		want csv.SegmentationMode
	}{
		{"auto small", small, csv.SegmentAuto, csv.SegmentIncremental},
		{"auto large", large, csv.SegmentAuto, csv.SegmentPrescan},
		{"forced prescan", small, csv.SegmentPrescan, csv.SegmentPrescan},
		{"forced incremental", large, csv.SegmentIncremental, csv.SegmentIncremental},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := csv.Enumerate(tt.buf, csv.Options{Segmentation: tt.mode})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows.Mode())
		})
	}
}

func TestEnumerate_PrescanAndIncrementalAgree(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 500; i++ {
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`,"quoted, `)
		buf.WriteString(strconv.Itoa(i * 7))
		buf.WriteString(`",tail`)
		switch i % 3 {
		case 0:
			buf.WriteString("\n")
		case 1:
			buf.WriteString("\r\n")
		default:
			buf.WriteString("\r")
		}
	}

	pre, err := csv.Enumerate(buf.Bytes(), csv.Options{Segmentation: csv.SegmentPrescan})
	require.NoError(t, err)
	inc, err := csv.Enumerate(buf.Bytes(), csv.Options{Segmentation: csv.SegmentIncremental})
	require.NoError(t, err)

	a, b := collect(t, pre), collect(t, inc)
	require.Len(t, a, 500)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"42", "quoted, 294", "tail"}, a[42])
}

func TestRow_Accessors(t *testing.T) {
	buf := []byte("skip\n a ,\"b,c\",,\"d\"\"e\"\nlast")
	rows, err := csv.Enumerate(buf, csv.Options{HasHeader: true, TrimWhitespace: true})
	require.NoError(t, err)

	require.True(t, rows.Next())
	row := rows.Row()
	assert.Equal(t, 0, row.Index())
	assert.Equal(t, 2, row.Line())
	assert.Equal(t, 5, row.Offset())
	assert.Equal(t, ` a ,"b,c",,"d""e"`, string(row.Raw()))
	assert.Equal(t, 4, row.FieldCount())

	want := []string{"a", "b,c", "", `d"e`}
	for i, w := range want {
		f, err := row.Field(i)
		require.NoError(t, err)
		assert.Equal(t, w, string(f.Bytes()))
		assert.Equal(t, i, f.Index())
		assert.Equal(t, 0, f.RowIndex())
	}
	assert.Equal(t, want, row.Values())
	assert.Equal(t, append([]string{"x"}, want...), row.AppendValues([]string{"x"}))

	for _, i := range []int{-1, 4, 100} {
		_, err := row.Field(i)
		assert.ErrorIs(t, err, csv.ErrFieldIndex)
		var ie *csv.IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, csv.IndexError{Row: 0, Index: i, Count: 4}, *ie)
	}

	require.True(t, rows.Next())
	assert.Equal(t, 1, rows.Row().Index())
	assert.Equal(t, 3, rows.Row().Line())
	assert.Equal(t, 1, rows.Row().FieldCount())
	assert.False(t, rows.Next())
}

func TestRow_FieldsIteratorMatchesIndexer(t *testing.T) {
	rows, err := csv.EnumerateString(`1,"two, 2",,"fo""ur",five`+"\n"+`"unterminated,x`, csv.Options{})
	require.NoError(t, err)

	for rows.Next() {
		row := rows.Row()
		it := row.Fields()
		n := 0
		for it.Next() {
			f := it.Field()
			g, err := row.Field(n)
			require.NoError(t, err)
			assert.Equal(t, g.String(), f.String())
			assert.Equal(t, g.Raw(), f.Raw())
			assert.Equal(t, n, f.Index())
			n++
		}
		assert.Equal(t, row.FieldCount(), n)

		it.Reset()
		require.True(t, it.Next())
		assert.Equal(t, 0, it.Field().Index())
	}
}

func TestRow_ReusedAcrossNext(t *testing.T) {
	rows, err := csv.EnumerateString("a,b,c\nd", csv.Options{})
	require.NoError(t, err)

	require.True(t, rows.Next())
	first := rows.Row()
	kept := first.Values()
	assert.Equal(t, 3, first.FieldCount())

	require.True(t, rows.Next())
	assert.Same(t, first, rows.Row(), "the row view is reused")
	assert.Equal(t, 1, first.FieldCount(), "field cache is recomputed for the new line")
	assert.Equal(t, []string{"a", "b", "c"}, kept, "owned values survive Next")
}

func TestRow_AppendValues_InternsRewrittenFieldsWithoutAllocating(t *testing.T) {
	pool := csv.NewStringPool(0)
	rows, err := csv.EnumerateString(`"a""b","q"tail,plain`, csv.Options{StringPool: pool})
	require.NoError(t, err)
	require.True(t, rows.Next())
	row := rows.Row()

	first := row.Values()
	require.Len(t, first, 3)
	assert.Equal(t, `a"b`, first[0])

	dst := make([]string, 0, 8)
	allocs := testing.AllocsPerRun(100, func() {
		dst = row.AppendValues(dst[:0])
	})
	assert.Zero(t, allocs)
	require.Equal(t, first, dst)
	for i := range first {
		assert.Same(t, unsafeData(first[i]), unsafeData(dst[i]), "field %d", i)
	}

	f, err := row.Field(0)
	require.NoError(t, err)
	assert.Same(t, unsafeData(first[0]), unsafeData(f.Materialize(pool)))
	assert.Equal(t, int64(3), pool.Stats().Size)
}

func TestParseAll(t *testing.T) {
	got, err := csv.ParseAll([]byte("id;name\n1;'x;y'\n2;z\n"), csv.Options{
		Delimiter: ';',
		Quote:     '\'',
		HasHeader: true,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "x;y"}, {"2", "z"}}, got)
}

func TestEnumerate_MetricsAndLogging(t *testing.T) {
	m, err := metrics.NewCollector(nil)
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)

	rows, err := csv.EnumerateString("h\n1\n2\n3", csv.Options{
		HasHeader: true,
		Metrics:   m,
		Logger:    zap.New(core),
	})
	require.NoError(t, err)
	assert.Len(t, collect(t, rows), 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Rows()))

	entries := logs.FilterMessage("enumerating buffer").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "incremental", ctx["segmentation"])
	assert.Equal(t, true, ctx["header"])
}
