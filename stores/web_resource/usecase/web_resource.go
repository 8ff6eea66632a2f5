package usecase

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
)

var dedicatedPinataRegex = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)

type WebResourceUseCaseCfg struct {
	HttpReader    domain.WebResourceReaderRepository
	IpfsReader    domain.WebResourceReaderRepository
	DataUriReader domain.WebResourceReaderRepository
	ArUriReader   domain.WebResourceReaderRepository
}

type webResourceUseCase struct {
	httpReader    domain.WebResourceReaderRepository
	ipfsReader    domain.WebResourceReaderRepository
	dataUriReader domain.WebResourceReaderRepository
	arUriReader   domain.WebResourceReaderRepository
}

func NewWebResourceUseCase(cfg *WebResourceUseCaseCfg) domain.WebResourceUseCase {
	return &webResourceUseCase{
		httpReader:    cfg.HttpReader,
		ipfsReader:    cfg.IpfsReader,
		dataUriReader: cfg.DataUriReader,
		arUriReader:   cfg.ArUriReader,
	}
}

func (u *webResourceUseCase) Get(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	return u.get(c, rawUrl, true)
}

func (u *webResourceUseCase) GetJson(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	data, err := u.get(c, rawUrl, true)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		c.WithFields(log.Fields{
			"url": rawUrl,
		}).Warn("invalid json")
		return nil, domain.ErrInvalidJsonFormat
	}

	return data, nil
}

func (u *webResourceUseCase) get(c bCtx.Ctx, rawUrl string, fallback bool) ([]byte, error) {
	rawUrl = strings.TrimSpace(rawUrl)
	pUrl, err := url.Parse(rawUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"url": rawUrl,
			"err": err,
		}).Warn("failed to parse url")
		return nil, xerrors.Errorf("parse %q: %w", rawUrl, domain.ErrBadParamInput)
	}

	reader, target := u.readerOf(pUrl.Scheme, rawUrl)
	if reader == nil {
		return nil, xerrors.Errorf("scheme %q: %w", pUrl.Scheme, domain.ErrUnsupportedSchema)
	}

	data, err := reader.Get(c, target)
	if err == nil {
		return data, nil
	}

	// public gateways rate limit, retry the same content through our own ipfs reader
	if fallback && pUrl.Scheme == "https" {
		if ipfsUrl := getIpfsUrl(rawUrl); len(ipfsUrl) > 0 {
			c.WithFields(log.Fields{
				"url":     rawUrl,
				"ipfsUrl": ipfsUrl,
			}).Info("falling back to ipfs")
			return u.get(c, ipfsUrl, false)
		}
	}

	c.WithFields(log.Fields{
		"schema": pUrl.Scheme,
		"url":    rawUrl,
		"err":    err,
	}).Warn("failed to fetch")
	return nil, err
}

func (u *webResourceUseCase) readerOf(scheme, rawUrl string) (domain.WebResourceReaderRepository, string) {
	switch scheme {
	case "https", "http":
		return u.httpReader, rawUrl
	case "ipfs":
		ipfsUrl := strings.TrimPrefix(rawUrl, "ipfs://")
		ipfsUrl = strings.TrimPrefix(ipfsUrl, "ipfs/")
		return u.ipfsReader, ipfsUrl
	case "data":
		return u.dataUriReader, rawUrl
	case "ar":
		return u.arUriReader, rawUrl
	}
	return nil, ""
}

func getIpfsUrl(url string) string {
	var (
		pinataPrefix     = "https://gateway.pinata.cloud/ipfs/"
		ipfsIoPrefix     = "https://ipfs.io/ipfs/"
		cloudflarePrefix = "https://cloudflare-ipfs.com/ipfs/"
		dwebPrefix       = "https://dweb.link/ipfs/"
		ipfsPrefix       = "ipfs://"
	)

	fixedPrefix := []string{pinataPrefix, ipfsIoPrefix, cloudflarePrefix, dwebPrefix}
	for _, p := range fixedPrefix {
		if strings.HasPrefix(url, p) {
			return strings.Replace(url, p, ipfsPrefix, 1)
		}
	}
	if dedicatedPinataRegex.MatchString(url) {
		return dedicatedPinataRegex.ReplaceAllLiteralString(url, ipfsPrefix)
	}
	return ""
}

// GatewayUrl rewrites ipfs:// and ar:// uris to http urls a browser can load
func GatewayUrl(uri, ipfsGateway, arGateway string) string {
	switch {
	case strings.HasPrefix(uri, "ipfs://"):
		cid := strings.TrimPrefix(strings.TrimPrefix(uri, "ipfs://"), "ipfs/")
		return strings.TrimSuffix(ipfsGateway, "/") + "/" + cid
	case strings.HasPrefix(uri, "ar://"):
		return strings.TrimSuffix(arGateway, "/") + "/" + strings.TrimPrefix(uri, "ar://")
	}
	return uri
}
