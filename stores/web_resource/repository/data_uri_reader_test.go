package repository

import (
	"reflect"
	"testing"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
)

func Test_dataUriReaderRepo_Get(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    []byte
		wantErr bool
	}{
		{
			name:    "invalid schema",
			uri:     "https://url",
			wantErr: true,
		},
		{
			name:    "no data part",
			uri:     "data:application/json;base64,",
			wantErr: true,
		},
		{
			name:    "no separator",
			uri:     "data:application/json;base64",
			wantErr: true,
		},
		{
			name: "plain json",
			uri:  `data:application/json;utf8,{"name":"Staker #7","image":"ipfs://QmImage/7.png"}`,
			want: []byte(`{"name":"Staker #7","image":"ipfs://QmImage/7.png"}`),
		},
		{
			name: "percent encoded json",
			uri:  `data:application/json,%7B%22name%22%3A%22Staker%20%237%22%7D`,
			want: []byte(`{"name":"Staker #7"}`),
		},
		{
			name: "stray percent kept raw",
			uri:  `data:text/plain,100%`,
			want: []byte(`100%`),
		},
		{
			name: "base64 json",
			uri:  "data:application/json;base64,eyJuYW1lIjoiU3Rha2VyICM3In0=",
			want: []byte(`{"name":"Staker #7"}`),
		},
		{
			name:    "broken base64",
			uri:     "data:application/json;base64,!!!",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDataUriReaderRepo()
			ctx := bCtx.Background()
			got, err := r.Get(ctx, tt.uri)
			if (err != nil) != tt.wantErr {
				t.Errorf("dataUriReaderRepo.Get() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dataUriReaderRepo.Get() = %s, want %s", got, tt.want)
			}
		})
	}
}
