package profiles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/profiles"
)

func testCID(t *testing.T) (string, []byte) {
	t.Helper()
	sum, err := multihash.Sum([]byte("bakers profile"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatalf("multihash.Sum: %v", err)
	}
	decoded, err := multihash.Decode(sum)
	if err != nil {
		t.Fatalf("multihash.Decode: %v", err)
	}
	return cid.NewCidV0(sum).String(), decoded.Digest
}

func TestPinDigest(t *testing.T) {
	id, digest := testCID(t)
	var got profiles.Profile
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/profiles/pin" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"cid": id})
	}))
	defer srv.Close()

	c := profiles.NewClient(srv.URL+"/profiles", zerolog.Nop())
	gotCID, gotDigest, err := c.PinDigest(context.Background(), profiles.Profile{Name: "Bakers", Description: "bread"})
	if err != nil {
		t.Fatalf("PinDigest: %v", err)
	}
	if gotCID != id {
		t.Fatalf("cid = %s, want %s", gotCID, id)
	}
	if string(gotDigest[:]) != string(digest) {
		t.Fatalf("digest mismatch")
	}
	if got.Name != "Bakers" || got.Description != "bread" {
		t.Fatalf("server received %+v", got)
	}
}

func TestPinServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := profiles.NewClient(srv.URL+"/", zerolog.Nop()).Pin(context.Background(), profiles.Profile{Name: "x"})
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestPinEmptyCID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := profiles.NewClient(srv.URL, zerolog.Nop()).Pin(context.Background(), profiles.Profile{}); err == nil {
		t.Fatalf("expected missing cid to fail")
	}
}

func TestDigestRoundTrip(t *testing.T) {
	id, _ := testCID(t)
	d, err := profiles.Digest(id)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	back, err := profiles.CIDFromDigest(d)
	if err != nil || back != id {
		t.Fatalf("CIDFromDigest = %s, %v; want %s", back, err, id)
	}
}

func TestDigestRejectsGarbage(t *testing.T) {
	if _, err := profiles.Digest("not-a-cid"); err == nil {
		t.Fatalf("expected invalid cid to fail")
	}
}
