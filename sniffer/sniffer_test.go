package sniffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvtable/domain/model"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sample     string
		delimiters []rune
		wantDelim  rune
		wantQuote  rune
		wantEscape rune
		wantDouble bool
		wantSkip   bool
		wantTerm   string
		wantHeader bool
	}{
		{
			name:       "Comma with alphabetic header",
			sample:     "a,b,c\n1,2,3\n4,5,6\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Tab separated",
			sample:     "name\tage\nann\t30\nbob\t41\n",
			wantDelim:  '\t',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Semicolon with decimal commas in data",
			sample:     "a;b\n1,5;2\n3,7;4\n",
			wantDelim:  ';',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Preference order breaks ties",
			sample:     "a;b,c\n1;2,3\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
		},
		{
			name:       "Restricted candidates",
			sample:     "a;b,c\n1;2,3\n",
			delimiters: []rune{';'},
			wantDelim:  ';',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
		},
		{
			name:       "Single quotes protect delimiters",
			sample:     "'name','note'\n'ann','a, b'\n'bob','c'\n",
			wantDelim:  ',',
			wantQuote:  '\'',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Doubled quotes",
			sample:     "id,quote\n1,\"say \"\"hi\"\"\"\n2,\"plain\"\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Backslash escaped quotes",
			sample:     "id,quote\n1,\"say \\\"hi\\\"\"\n2,\"plain\"\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantEscape: '\\',
			wantDouble: false,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Quoted region suggests delimiter",
			sample:     "x;\"1,2\"\ny;\"3,4\"\n",
			wantDelim:  ';',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
		},
		{
			name:       "Space after every delimiter",
			sample:     "a, b, c\n1, 2, 3\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantSkip:   true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "CRLF terminator",
			sample:     "a,b\r\n1,2\r\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\r\n",
			wantHeader: true,
		},
		{
			name:       "CR terminator",
			sample:     "a,b\r1,2\r",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\r",
			wantHeader: true,
		},
		{
			name:       "No line break",
			sample:     "a|b|c",
			wantDelim:  '|',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\r\n",
		},
		{
			name:       "Truncated last line is ignored",
			sample:     "a,b,c\n1,2,3\n4,5",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
		{
			name:       "Byte order mark",
			sample:     "\ufeffa,b\n1,2\n",
			wantDelim:  ',',
			wantQuote:  '"',
			wantDouble: true,
			wantTerm:   "\n",
			wantHeader: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, header, err := Sniff(tt.sample, tt.delimiters...)
			require.NoError(t, err)
			assert.Equal(t, string(tt.wantDelim), string(d.Delimiter()))
			assert.Equal(t, string(tt.wantQuote), string(d.QuoteChar()))
			assert.Equal(t, tt.wantEscape, d.EscapeChar())
			assert.Equal(t, tt.wantDouble, d.DoubleQuote())
			assert.Equal(t, tt.wantSkip, d.SkipLeadingSpace())
			assert.Equal(t, tt.wantTerm, d.LineTerminator())
			assert.Equal(t, model.QuoteMinimal, d.Quoting())
			assert.Equal(t, tt.wantHeader, header)
			assert.NoError(t, d.Validate())
		})
	}
}

func TestSniff_Indeterminate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sample     string
		delimiters []rune
	}{
		{
			name:   "Empty sample",
			sample: "",
		},
		{
			name:   "Single column of words",
			sample: "apple\nbanana\ncherry\n",
		},
		{
			name:   "Wildly inconsistent counts",
			sample: "a,b\n1,2,3,4\n1\n5,6,7\n",
		},
		{
			name:       "Candidate absent from sample",
			sample:     "a,b\n1,2\n",
			delimiters: []rune{'|'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Sniff(tt.sample, tt.delimiters...)
			assert.ErrorIs(t, err, model.ErrDialectIndeterminate)
		})
	}
}

func TestSniff_ThresholdRelaxes(t *testing.T) {
	t.Parallel()

	t.Run("One odd line in eleven passes", func(t *testing.T) {
		t.Parallel()

		sample := "a,b,c\n" + strings.Repeat("1,2,3\n", 9) + "1,2,3,4\n"
		d, _, err := Sniff(sample)
		require.NoError(t, err)
		assert.Equal(t, ',', d.Delimiter())
	})

	t.Run("Two odd lines in eleven fail", func(t *testing.T) {
		t.Parallel()

		sample := "a,b,c\n" + strings.Repeat("1,2,3\n", 8) + "1,2,3,4\n1,2\n"
		_, _, err := Sniff(sample)
		assert.ErrorIs(t, err, model.ErrDialectIndeterminate)
	})
}

func TestSniffer_HasHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample string
		want   bool
	}{
		{
			name:   "Numeric first row",
			sample: "1,2,3\n4,5,6\n",
			want:   false,
		},
		{
			name:   "Names over mixed data",
			sample: "Name,Age\nAnn,30\nBob,41\n",
			want:   true,
		},
		{
			name:   "Dates under a label",
			sample: "when,count\n2024-01-02,3\n2024-02-03,4\n",
			want:   true,
		},
		{
			name:   "Text lengths differ from the first row",
			sample: "code,name\nAB,x\nCD,y\n",
			want:   true,
		},
		{
			name:   "Text lengths match the first row",
			sample: "ab,x\ncd,y\nef,z\n",
			want:   false,
		},
		{
			name:   "Single row",
			sample: "a,b,c\n",
			want:   false,
		},
		{
			name:   "Rows of another width are ignored",
			sample: "a,b\n1,2,3\n4,5,6\n",
			want:   false,
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, s.HasHeader(tt.sample, model.NewDialect()))
		})
	}
}

func TestSniffer_HeaderRows(t *testing.T) {
	t.Parallel()

	// the third data row breaks the integer column
	sample := "id\n1\n2\nx\n"

	assert.True(t, New(WithHeaderRows(2)).HasHeader(sample, model.NewDialect()))
	assert.False(t, New().HasHeader(sample, model.NewDialect()))
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultDelimiters, New().Delimiters())
	assert.Equal(t, DefaultDelimiters, New(WithDelimiters()).Delimiters())
	assert.Equal(t, []rune{';', '|'}, New(WithDelimiters(';', '\n', '|', ';')).Delimiters())
	assert.Empty(t, New(WithDelimiters('\n', model.NoChar)).Delimiters())
}

func TestSniffer_NoUsableDelimiter(t *testing.T) {
	t.Parallel()

	_, err := New(WithDelimiters('\r', '\n')).Sniff("a,b\n1,2\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDialectIndeterminate)
}

func TestSniffer_CompleteSample(t *testing.T) {
	t.Parallel()

	sample := "Name,Age\nAnn,30"
	d := model.NewDialect()

	assert.False(t, New().HasHeader(sample, d), "unterminated last line is treated as truncated")
	assert.True(t, New(WithCompleteSample(true)).HasHeader(sample, d))

	got, err := New(WithCompleteSample(true)).Sniff(sample)
	require.NoError(t, err)
	assert.Equal(t, ',', got.Delimiter())
}

func TestCountDelimiter_LastLine(t *testing.T) {
	t.Parallel()

	text := []rune("a,b\n1,2\n3")

	assert.Equal(t, []int{1, 1}, countDelimiter(text, ',', '"', model.NoChar, false).counts)
	assert.Equal(t, []int{1, 1, 0}, countDelimiter(text, ',', '"', model.NoChar, true).counts)
}

func TestSniff_UnclosedQuoteKeepsLaterEvidence(t *testing.T) {
	t.Parallel()

	sample := "a,\"oops\n" + strings.Repeat("'x';'y'\n", 10)

	d, err := New().Sniff(sample)
	require.NoError(t, err)
	assert.Equal(t, '\'', d.QuoteChar())
	assert.Equal(t, ';', d.Delimiter())
}
