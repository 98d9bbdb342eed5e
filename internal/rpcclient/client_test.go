package rpcclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCall_Result(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.JSONRPC != "2.0" || req.Method != "session_status" {
			t.Errorf("unexpected request %+v", req)
		}
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"connected":true},"id":1}`))
	}))
	defer srv.Close()

	var out struct {
		Connected bool `json:"connected"`
	}
	c := New(srv.URL)
	if err := c.Call("session_status", nil, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Connected {
		t.Error("result not decoded")
	}
}

func TestCall_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32601,"message":"method not found","data":{"category":"other"}},"id":1}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Call("nope", nil, nil)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error type %T", err)
	}
	if rpcErr.Code != -32601 {
		t.Errorf("code = %d", rpcErr.Code)
	}
	if len(rpcErr.Data) == 0 {
		t.Error("error data should be preserved")
	}
}

func TestCall_NilResultDiscards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"anything":1},"id":1}`))
	}))
	defer srv.Close()

	if err := New(srv.URL).Call("whatever", nil, nil); err != nil {
		t.Fatal(err)
	}
}
