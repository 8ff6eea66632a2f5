package repository

import (
	"encoding/base64"
	"net/url"
	"strings"

	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

const dataUriSchema = "data:"

type dataUriReaderRepo struct {
}

// NewDataUriReaderRepo decodes on-chain data: uris
func NewDataUriReaderRepo() domain.WebResourceReaderRepository {
	return &dataUriReaderRepo{}
}

func (r *dataUriReaderRepo) Get(_ ctx.Ctx, uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataUriSchema) {
		return nil, xerrors.Errorf("invalid data uri: %w", domain.ErrUnsupportedSchema)
	}
	// data:[<mediatype>][;base64],<data>
	uriParts := strings.SplitN(strings.TrimPrefix(uri, dataUriSchema), ",", 2)
	if len(uriParts) < 2 || len(uriParts[1]) == 0 {
		return nil, xerrors.Errorf("no data part provided")
	}

	if strings.HasSuffix(uriParts[0], ";base64") {
		return base64.StdEncoding.DecodeString(uriParts[1])
	}
	// percent encoded text, kept raw when it does not unescape
	if s, err := url.PathUnescape(uriParts[1]); err == nil {
		return []byte(s), nil
	}
	return []byte(uriParts[1]), nil
}
