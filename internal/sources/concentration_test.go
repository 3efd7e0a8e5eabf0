package sources

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noaaSample = `# --------------------------------------------------------------------
# USE OF NOAA GML DATA
# --------------------------------------------------------------------
# year,month,day,decimal,average
2024,1,1,2024.0014,420.10
2024,1,2,2024.0041,420.30

2024,1,3,2024.0068,-999.99
2024,1,4,2024.0096,420.50
2024,1,5,2024.0123,420.70
`

func TestParseConcentration_ReturnsLatestValidRow(t *testing.T) {
	snap, err := ParseConcentration(strings.NewReader(noaaSample))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), snap.Date)
	assert.Equal(t, 420.70, snap.PPM)
}

func TestParseConcentration_Filtering(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDate time.Time
		wantPPM  float64
	}{
		{
			name:     "latest row invalid falls back to previous",
			input:    "2024,1,1,2024.0,420.1\n2024,1,2,2024.0,-999.99\n",
			wantDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.1,
		},
		{
			name:     "zero mean is discarded",
			input:    "2024,1,1,2024.0,419.0\n2024,1,2,2024.0,0\n",
			wantDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  419.0,
		},
		{
			name:     "rows out of order",
			input:    "2024,3,1,2024.2,423.0\n2023,12,31,2023.9,421.0\n2024,2,29,2024.1,422.0\n",
			wantDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  423.0,
		},
		{
			name:     "non numeric columns skipped",
			input:    "year,month,day,decimal,average\n2024,1,1,2024.0,420.1\n2024,x,2,2024.0,421.0\n",
			wantDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.1,
		},
		{
			name:     "short rows skipped",
			input:    "2024,1,9,2024.0\n2024,1,1,2024.0,420.1\n",
			wantDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.1,
		},
		{
			name:     "impossible date skipped",
			input:    "2024,2,30,2024.1,425.0\n2024,1,1,2024.0,420.1\n",
			wantDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.1,
		},
		{
			name:     "whitespace around fields",
			input:    "  2024 , 1 , 2 , 2024.0 , 420.2  \r\n",
			wantDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.2,
		},
		{
			name:     "duplicate date keeps first",
			input:    "2024,1,2,2024.0,420.2\n2024,1,2,2024.0,430.0\n",
			wantDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			wantPPM:  420.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParseConcentration(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, snap.Date)
			assert.Equal(t, tt.wantPPM, snap.PPM)
		})
	}
}

func TestParseConcentration_NoValidRows(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"comments only": "# header\n# more\n",
		"all invalid":   "2024,1,1,2024.0,-999.99\n2024,1,2,2024.0,abc\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConcentration(strings.NewReader(input))
			require.Error(t, err)
			assert.True(t, IsKind(err, KindParse))
			assert.ErrorIs(t, err, ErrNoValidRows)
		})
	}
}
