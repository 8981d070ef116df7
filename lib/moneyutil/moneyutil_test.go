package moneyutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEuros(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"51.921.000 €", 51921000},
		{"€ 51.921.000", 51921000},
		{"  1.300.000  ", 1300000},
		{"17 jugadores", 17},
		{"850", 850},
		{"", 0},
		{"N/A", 0},
		{"sin valor", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ParseEuros(c.input), "input: %q", c.input)
	}
}

func TestFormatEuros(t *testing.T) {
	require.Equal(t, "51.921.000 €", FormatEuros(51921000))
	require.Equal(t, "850 €", FormatEuros(850))
	require.Equal(t, "0 €", FormatEuros(0))
	require.Equal(t, "-1.000 €", FormatEuros(-1000))
}

func TestFormatSigned(t *testing.T) {
	require.Equal(t, "+1.300.000", FormatSigned(1300000))
	require.Equal(t, "-200.000", FormatSigned(-200000))
	require.Equal(t, "+0", FormatSigned(0))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 999, 1000, 51921000} {
		require.Equal(t, v, ParseEuros(FormatEuros(v)))
	}
}
