package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yourorg/onchain-wrapped/internal/config"
	"github.com/yourorg/onchain-wrapped/internal/fetch"
	"github.com/yourorg/onchain-wrapped/internal/ipfs"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/types"
)

// emptyAPI reports no activity on any chain.
type emptyAPI struct{}

func (emptyAPI) TxPage(context.Context, types.Chain, string, int) ([]model.Transaction, error) {
	return nil, nil
}

func (emptyAPI) YearSummary(context.Context, types.Chain, string) ([]model.SummaryBucket, error) {
	return nil, nil
}

func newTestServer(api fetch.API, pinataURL string) *Server {
	return &Server{
		cfg: config.Config{
			CovalentAPIKey: "test-key",
			TargetYear:     2025,
			FetchBudget:    2 * time.Second,
			PageSize:       100,
		},
		covalent:  api,
		pinata:    ipfs.NewPinata(pinataURL, "jwt"),
		rateLimit: rate.NewLimiter(rate.Inf, 1),
		metrics:   newServerMetrics(),
	}
}

const testAddress = "0x00000000219ab540356cbb839cbe05303d7705fa"

func TestHandleWrappedMissingAddress(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")

	rec := httptest.NewRecorder()
	s.handleWrapped(rec, httptest.NewRequest(http.MethodGet, "/wrapped", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Address required", body["error"])
}

func TestHandleWrappedInvalidAddress(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")

	rec := httptest.NewRecorder()
	s.handleWrapped(rec, httptest.NewRequest(http.MethodGet, "/wrapped?address=not-an-address", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWrappedMissingCredential(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")
	s.cfg.CovalentAPIKey = ""

	rec := httptest.NewRecorder()
	s.handleWrapped(rec, httptest.NewRequest(http.MethodGet, "/wrapped?address="+testAddress, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWrappedNoActivity(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")

	rec := httptest.NewRecorder()
	s.handleWrapped(rec, httptest.NewRequest(http.MethodGet, "/wrapped?address="+testAddress, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.WrappedResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

	assert.Equal(t, ethcommon.HexToAddress(testAddress).Hex(), result.Wallet)
	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 0, result.Summary.TotalTx)
	assert.Equal(t, "None", result.Favorites.TopChain)
	assert.Equal(t, "Common", result.Rarity.Tier)
}

func TestHandleWrappedMethodNotAllowed(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")

	rec := httptest.NewRecorder()
	s.handleWrapped(rec, httptest.NewRequest(http.MethodPost, "/wrapped?address="+testAddress, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleUpload(t *testing.T) {
	pinata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"IpfsHash": "QmUploaded"}`)
	}))
	defer pinata.Close()

	s := newTestServer(emptyAPI{}, pinata.URL)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"name": "My Card"}`))
	rec := httptest.NewRecorder()
	s.handleUpload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ipfs://QmUploaded", body["ipfsUri"])
}

func TestHandleUploadPinningFailure(t *testing.T) {
	pinata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer pinata.Close()

	s := newTestServer(emptyAPI{}, pinata.URL)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.handleUpload(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleUploadInvalidBody(t *testing.T) {
	s := newTestServer(emptyAPI{}, "")

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	s.handleUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
