package repository

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
)

const (
	arUriSchema = "ar://"

	// metadata documents are small, anything bigger is not a token uri we can use
	defaultMaxBytes = 4 << 20
)

type httpReaderRepo struct {
	client     http.Client
	ctxTimeout time.Duration
	headers    map[string]string
	maxBytes   int64
	toUrl      func(string) (string, error)
}

func NewHttpReaderRepo(client http.Client, timeout time.Duration, headers map[string]string) domain.WebResourceReaderRepository {
	return &httpReaderRepo{
		client:     client,
		ctxTimeout: timeout,
		headers:    headers,
		maxBytes:   defaultMaxBytes,
		toUrl:      func(url string) (string, error) { return url, nil },
	}
}

// NewIpfsGatewayReaderRepo reads an ipfs path ("<cid>/<file>") through a http gateway
func NewIpfsGatewayReaderRepo(client http.Client, gateway string, timeout time.Duration) domain.WebResourceReaderRepository {
	gateway = strings.TrimSuffix(gateway, "/")
	return &httpReaderRepo{
		client:     client,
		ctxTimeout: timeout,
		maxBytes:   defaultMaxBytes,
		toUrl: func(cid string) (string, error) {
			return fmt.Sprintf("%s/%s", gateway, strings.TrimPrefix(cid, "/")), nil
		},
	}
}

// NewArReaderRepo reads ar:// uris through an arweave gateway
func NewArReaderRepo(client http.Client, gateway string, timeout time.Duration) domain.WebResourceReaderRepository {
	gateway = strings.TrimSuffix(gateway, "/")
	return &httpReaderRepo{
		client:     client,
		ctxTimeout: timeout,
		maxBytes:   defaultMaxBytes,
		toUrl: func(uri string) (string, error) {
			if !strings.HasPrefix(uri, arUriSchema) {
				return "", xerrors.Errorf("invalid ar uri %s: %w", uri, domain.ErrUnsupportedSchema)
			}
			return gateway + "/" + strings.TrimPrefix(uri, arUriSchema), nil
		},
	}
}

func (r *httpReaderRepo) Get(c bCtx.Ctx, uri string) ([]byte, error) {
	url, err := r.toUrl(uri)
	if err != nil {
		return nil, err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Warn("failed with request")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Warn("resp.StatusCode != 200")
		if resp.StatusCode == http.StatusNotFound {
			return nil, xerrors.Errorf("get %s: %w", url, domain.ErrNotFound)
		}
		return nil, xerrors.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	if int64(len(body)) > r.maxBytes {
		return nil, xerrors.Errorf("get %s: body exceeds %d bytes", url, r.maxBytes)
	}
	return body, nil
}
