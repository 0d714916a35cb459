package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint_Created(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/members", registrationPayload("asha@example.com"), nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Member created successfully", resp["message"])

	member := resp["member"].(map[string]interface{})
	assert.Equal(t, "AMP000001", member["cardNumber"])
	assert.Equal(t, "pending", member["paymentStatus"])
	assert.Equal(t, "500.00", member["paymentAmount"])

	order := resp["order"].(map[string]interface{})
	assert.Equal(t, "order_0001", order["id"])
	assert.Equal(t, float64(50000), order["amount"])
	assert.Equal(t, "INR", order["currency"])
}

func TestRegisterEndpoint_DirectModeOmitsOrder(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/members", registrationPayload("asha@example.com"), nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "order")
	member := resp["member"].(map[string]interface{})
	assert.Equal(t, "completed", member["paymentStatus"])
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, true)
	s.register(t, "asha@example.com")

	w := s.do(t, http.MethodPost, "/api/members", registrationPayload("asha@example.com"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "CONFLICT", resp["code"])
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	s := newTestServer(t, true)

	payload := registrationPayload("asha@example.com")
	payload["phone"] = "12345"
	payload["bloodGroup"] = "C+"
	w := s.do(t, http.MethodPost, "/api/members", payload, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["code"])
	errs := resp["errors"].(map[string]interface{})
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "bloodGroup")
}

func TestRegisterEndpoint_MalformedBody(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/members", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpoint_GatewayDown(t *testing.T) {
	s := newTestServer(t, true)
	s.gateway.failCreate = true

	w := s.do(t, http.MethodPost, "/api/members", registrationPayload("asha@example.com"), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "GATEWAY_ERROR", resp["code"])

	// nothing persisted, the member list stays empty
	w = s.do(t, http.MethodGet, "/api/members", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, float64(0), list["total"])
}

func TestGetMemberEndpoint(t *testing.T) {
	s := newTestServer(t, true)
	s.register(t, "asha@example.com")

	w := s.do(t, http.MethodGet, "/api/members/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	member := resp["member"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", member["email"])

	w = s.do(t, http.MethodGet, "/api/members/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/members/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMembersEndpoint_Pagination(t *testing.T) {
	s := newTestServer(t, true)
	s.register(t, "a@example.com")
	s.register(t, "b@example.com")
	s.register(t, "c@example.com")

	w := s.do(t, http.MethodGet, "/api/members?limit=2&offset=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["total"])
	members := resp["members"].([]interface{})
	require.Len(t, members, 2)
	assert.Equal(t, float64(2), members[0].(map[string]interface{})["id"])
}

func TestUpdateAddressEndpoint(t *testing.T) {
	s := newTestServer(t, true)
	s.register(t, "asha@example.com")

	w := s.do(t, http.MethodPut, "/api/members/1/address",
		map[string]string{"address": "44 New Lane, Kochi"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	member := resp["member"].(map[string]interface{})
	assert.Equal(t, "44 New Lane, Kochi", member["address"])

	w = s.do(t, http.MethodPut, "/api/members/1/address", map[string]string{"address": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/members/999/address",
		map[string]string{"address": "44 New Lane, Kochi"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCardEndpoint_PendingMember(t *testing.T) {
	s := newTestServer(t, true)
	s.register(t, "asha@example.com")

	w := s.do(t, http.MethodGet, "/api/members/1/card", nil, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CARD_NOT_READY", resp["code"])
}

func TestCardEndpoint_CompletedMember(t *testing.T) {
	s := newTestServer(t, true)
	orderID := s.register(t, "asha@example.com")

	sig := signHex(testKeySecret, []byte(orderID+"|pay_XYZ"))
	w := s.do(t, http.MethodPost, "/api/payments/verify", verifyPayload(orderID, "pay_XYZ", sig), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/members/1/card", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=membership-card-AMP000001.png",
		w.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), w.Body.Bytes()[:8])
}
