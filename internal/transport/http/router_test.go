package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bingo-hall/internal/docstore"
	"bingo-hall/internal/ledger"
	"bingo-hall/internal/store"
)

type testEnv struct {
	server *httptest.Server
	store  *store.Store
	super  *store.Account
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := docstore.OpenFile("")
	if err != nil {
		t.Fatalf("open docstore: %v", err)
	}
	st := store.New(db)
	super, err := st.CreateAccount(context.Background(), "root", store.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("seed super admin: %v", err)
	}
	srv := httptest.NewServer(NewRouter(st, ledger.New(st)))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, store: st, super: super}
}

func (e *testEnv) do(t *testing.T, method, path, callerID, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reqBody *bytes.Buffer
	if body == "" {
		reqBody = bytes.NewBuffer(nil)
	} else {
		reqBody = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if callerID != "" {
		req.Header.Set("X-Account-ID", callerID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) mustCreateAccount(t *testing.T, name, role string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/accounts", e.super.ID,
		`{"name":"`+name+`","role":"`+role+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create account %s: status %d (%v)", name, resp.StatusCode, body)
	}
	return body["account_id"].(string)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["ok"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/api/recharges", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "missing_account" {
		t.Fatalf("error = %v", body["error"])
	}

	resp, body = env.do(t, http.MethodGet, "/api/recharges", "nope", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "unknown_account" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestRoleGateOnAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	agentID := env.mustCreateAccount(t, "agent", store.RoleAgent)

	resp, body := env.do(t, http.MethodPost, "/api/accounts", agentID,
		`{"name":"x","role":"agent"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (%v)", resp.StatusCode, body)
	}
}

func TestRechargeFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	adminID := env.mustCreateAccount(t, "downtown-admin", store.RoleHouseAdmin)
	cashierID := env.mustCreateAccount(t, "downtown-cashier", store.RoleCashier)

	resp, houseBody := env.do(t, http.MethodPost, "/api/houses", env.super.ID,
		`{"name":"downtown","house_admin_id":"`+adminID+`","cashier_id":"`+cashierID+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create house: status %d (%v)", resp.StatusCode, houseBody)
	}
	houseID := houseBody["house_id"].(string)

	resp, recBody := env.do(t, http.MethodPost, "/api/recharges", env.super.ID,
		`{"house_id":"`+houseID+`","amount":"1000","commission_rate":"0.10"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create recharge: status %d (%v)", resp.StatusCode, recBody)
	}
	if recBody["package_added"] != "10000" {
		t.Fatalf("package_added = %v, want 10000", recBody["package_added"])
	}

	resp, balBody := env.do(t, http.MethodGet, "/api/accounts/"+cashierID+"/balance", env.super.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("balance: status %d", resp.StatusCode)
	}
	if balBody["package"] != "10000" {
		t.Fatalf("cashier package = %v, want 10000", balBody["package"])
	}

	rechargeID := recBody["recharge_id"].(string)
	resp, updBody := env.do(t, http.MethodPut, "/api/recharges/"+rechargeID, env.super.ID,
		`{"amount":"500","commission_rate":"0.10"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update recharge: status %d (%v)", resp.StatusCode, updBody)
	}
	if updBody["package_added"] != "5000" {
		t.Fatalf("package_added after update = %v, want 5000", updBody["package_added"])
	}

	resp, listBody := env.do(t, http.MethodGet, "/api/recharges?house_id="+houseID, env.super.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	items := listBody["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0].(map[string]any)
	if item["house_name"] != "downtown" {
		t.Fatalf("house_name = %v", item["house_name"])
	}
}

func TestInsufficientBalanceNamesPayer(t *testing.T) {
	env := newTestEnv(t)
	agentID := env.mustCreateAccount(t, "broke-agent", store.RoleAgent)
	adminID := env.mustCreateAccount(t, "admin", store.RoleHouseAdmin)

	resp, houseBody := env.do(t, http.MethodPost, "/api/houses", env.super.ID,
		`{"name":"downtown","house_admin_id":"`+adminID+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create house: status %d (%v)", resp.StatusCode, houseBody)
	}
	houseID := houseBody["house_id"].(string)

	resp, body := env.do(t, http.MethodPost, "/api/recharges", agentID,
		`{"house_id":"`+houseID+`","amount":"100","commission_rate":"0.10"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (%v)", resp.StatusCode, body)
	}
	if body["error"] != "insufficient_balance" {
		t.Fatalf("error = %v", body["error"])
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, agentID) {
		t.Fatalf("message %q does not name payer %s", msg, agentID)
	}
}

func TestDuplicateHouseNameOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	adminID := env.mustCreateAccount(t, "admin1", store.RoleHouseAdmin)
	admin2ID := env.mustCreateAccount(t, "admin2", store.RoleHouseAdmin)

	resp, _ := env.do(t, http.MethodPost, "/api/houses", env.super.ID,
		`{"name":"downtown","house_admin_id":"`+adminID+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first house: status %d", resp.StatusCode)
	}
	resp, body := env.do(t, http.MethodPost, "/api/houses", env.super.ID,
		`{"name":"downtown","house_admin_id":"`+admin2ID+`"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (%v)", resp.StatusCode, body)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "house name") {
		t.Fatalf("message %q does not name the conflicting field", msg)
	}
}
