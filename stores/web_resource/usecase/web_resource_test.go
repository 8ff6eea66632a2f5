package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type fakeReader struct {
	data  map[string]string
	calls []string
}

func (r *fakeReader) Get(_ bCtx.Ctx, uri string) ([]byte, error) {
	r.calls = append(r.calls, uri)
	if d, ok := r.data[uri]; ok {
		return []byte(d), nil
	}
	return nil, domain.ErrNotFound
}

func Test_getIpfsUrl(t *testing.T) {
	type args struct {
		url string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "pinata",
			args: args{
				url: "https://gateway.pinata.cloud/ipfs/QmVVutd4A4i1jCQnJXR49miQdXLNLVeGwyo5wWznpgRGeH",
			},
			want: "ipfs://QmVVutd4A4i1jCQnJXR49miQdXLNLVeGwyo5wWznpgRGeH",
		},
		{
			name: "pinata dedicated",
			args: args{
				url: "https://womenandweapons.mypinata.cloud/ipfs/QmTeTTMFgPYULCNkfxLcJSu5KByxDWh6JA4HFZY4CQnxdS",
			},
			want: "ipfs://QmTeTTMFgPYULCNkfxLcJSu5KByxDWh6JA4HFZY4CQnxdS",
		},
		{
			name: "ipfs.io",
			args: args{
				url: "https://ipfs.io/ipfs/QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0.png",
			},
			want: "ipfs://QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0.png",
		},
		{
			name: "noop",
			args: args{
				url: "https://some.url",
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getIpfsUrl(tt.args.url); got != tt.want {
				t.Errorf("getIpfsUrl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	httpReader := &fakeReader{data: map[string]string{"https://meta.example/1": `{"name":"one"}`}}
	ipfsReader := &fakeReader{data: map[string]string{
		"QmCid/1.json": `{"name":"ipfs one"}`,
		"QmCid/2.json": `not json`,
	}}
	u := NewWebResourceUseCase(&WebResourceUseCaseCfg{
		HttpReader:    httpReader,
		IpfsReader:    ipfsReader,
		DataUriReader: &fakeReader{},
		ArUriReader:   &fakeReader{},
	})

	b, err := u.GetJson(ctx, "https://meta.example/1")
	req.NoError(err)
	req.Equal(`{"name":"one"}`, string(b))

	b, err = u.GetJson(ctx, "ipfs://ipfs/QmCid/1.json")
	req.NoError(err)
	req.Equal(`{"name":"ipfs one"}`, string(b))

	// gateway miss falls back to the ipfs reader
	b, err = u.GetJson(ctx, "https://ipfs.io/ipfs/QmCid/1.json")
	req.NoError(err)
	req.Equal(`{"name":"ipfs one"}`, string(b))

	_, err = u.GetJson(ctx, "ipfs://QmCid/2.json")
	req.Equal(domain.ErrInvalidJsonFormat, err)

	_, err = u.Get(ctx, "ftp://meta.example/1")
	req.True(errors.Is(err, domain.ErrUnsupportedSchema))

	_, err = u.Get(ctx, "https://meta.example/missing")
	req.True(errors.Is(err, domain.ErrNotFound))
}

func TestGatewayUrl(t *testing.T) {
	req := require.New(t)
	req.Equal("https://ipfs.io/ipfs/QmImage/1.png", GatewayUrl("ipfs://QmImage/1.png", "https://ipfs.io/ipfs/", "https://arweave.net"))
	req.Equal("https://ipfs.io/ipfs/QmImage/1.png", GatewayUrl("ipfs://ipfs/QmImage/1.png", "https://ipfs.io/ipfs", "https://arweave.net"))
	req.Equal("https://arweave.net/tx", GatewayUrl("ar://tx", "https://ipfs.io/ipfs", "https://arweave.net/"))
	req.Equal("https://img.example/1.png", GatewayUrl("https://img.example/1.png", "https://ipfs.io/ipfs", "https://arweave.net"))
}
