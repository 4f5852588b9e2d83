package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", in: `"30m"`, want: 30 * time.Minute},
		{name: "hours", in: `"168h"`, want: 168 * time.Hour},
		{name: "integer nanoseconds", in: `60000000000`, want: time.Minute},
		{name: "garbage string", in: `"nope"`, wantErr: true},
		{name: "wrong type", in: `true`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.in), &d)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{30 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"30m0s"`, string(b))
}
