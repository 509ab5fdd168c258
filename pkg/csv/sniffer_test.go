package csv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shapestone/shape-csvtok/pkg/csv"
)

func TestSniffer_Delimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   byte
	}{
		{"empty", "", ','},
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"pipe", "a|b\n1|2\n", '|'},
		{"quoted commas ignored", "\"x,y,z\";b\n\"1,2,3\";4\n", ';'},
		{"consistency beats frequency", "a;b,c,d\n1;2\n3;4,5\n", ';'},
		{"crlf lines", "a;b\r\n1;2\r\n", ';'},
		{"no delimiter", "abc\ndef\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(csv.NewSniffer([]byte(tt.sample)).Delimiter()))
		})
	}
}

func TestSniffer_HasHeader(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   bool
	}{
		{"identifiers over numbers", "id,name,score\n1,alice,9.5\n", true},
		{"title case", "First Name,Last Name\nAda,Lovelace\n", true},
		{"numeric first row", "1,2,3\n4,5,6\n", false},
		{"emails and dates", "a@example.com,2024-01-02\nb@example.com,2024-01-03\n", false},
		{"single line", "id,name\n", false},
		{"quoted header", "\"user_id\",\"userName\"\n7,bob\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csv.NewSniffer([]byte(tt.sample)).HasHeader())
		})
	}
}

func TestSniffer_Options(t *testing.T) {
	sample := []byte("city|population\nOslo|709000\nBergen|291000\n")
	opts := csv.NewSniffer(sample).Options()
	assert.Equal(t, byte('|'), opts.Delimiter)
	assert.True(t, opts.HasHeader)

	got, err := csv.ParseAll(sample, opts)
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"Oslo", "709000"}, {"Bergen", "291000"}}, got)
}
