package handlers_test

import (
	"net/http"
	"testing"

	"realestate_backend/internal/models"
	"realestate_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type propertyBody struct {
	ID      string                `json:"id"`
	OwnerID string                `json:"owner_id"`
	Title   string                `json:"title"`
	Status  models.PropertyStatus `json:"status"`
}

type propertyListBody struct {
	Properties []propertyBody `json:"properties"`
	Total      int            `json:"total"`
}

func listingPayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":         title,
		"address":       "12 Elm Street",
		"city":          "Springfield",
		"property_type": "HOUSE",
		"listing_type":  "SALE",
		"price":         420000,
		"bedrooms":      3,
		"bathrooms":     2,
		"amenities":     []string{"garden", "garage"},
		"status":        "APPROVED",
	}
}

func TestPropertyHandler_ModerationFlow(t *testing.T) {
	ts := testutil.NewTestServer(t, false)
	ownerToken, owner := ts.CreateAndLoginUser(t, models.UserRoleOwner)
	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/properties", ownerToken, listingPayload("Family house"))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created propertyBody
	testutil.Decode(t, body, &created)
	assert.Equal(t, models.PropertyStatusPending, created.Status, "client-supplied status is ignored")
	assert.Equal(t, owner.ID, created.OwnerID)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "pending listings are hidden")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/properties/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var pending propertyListBody
	testutil.Decode(t, body, &pending)
	require.Equal(t, 1, pending.Total)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/properties/"+created.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"amenities":["garden","garage"]`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties?city=spring&min_bedrooms=3", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var found propertyListBody
	testutil.Decode(t, body, &found)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, created.ID, found.Properties[0].ID)

	// Editing sends the listing back to moderation.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/properties/"+created.ID, ownerToken, listingPayload("Family house, renovated"))
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated propertyBody
	testutil.Decode(t, body, &updated)
	assert.Equal(t, models.PropertyStatusPending, updated.Status)
	assert.Equal(t, "Family house, renovated", updated.Title)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/properties/missing/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPropertyHandler_OwnershipAndRoles(t *testing.T) {
	ts := testutil.NewTestServer(t, false)
	ownerToken, owner := ts.CreateAndLoginUser(t, models.UserRoleOwner)
	otherToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAgent)
	buyerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleBuyer)
	property := ts.CreateProperty(t, owner)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/properties", buyerToken, listingPayload("Not allowed"))
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/properties/"+property.ID, otherToken, listingPayload("Hijack"))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/properties/"+property.ID+"/mark-sold", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/properties/"+property.ID+"/mark-sold", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"SOLD"`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var mine propertyListBody
	testutil.Decode(t, body, &mine)
	assert.Equal(t, 1, mine.Total)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/properties/"+property.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/"+property.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPropertyHandler_PublicQueries(t *testing.T) {
	ts := testutil.NewTestServer(t, false)
	owner := ts.CreateUser(t, models.UserRoleOwner)
	ts.CreateProperty(t, owner, testutil.WithPrice(100000))
	ts.CreateProperty(t, owner, testutil.WithListing(models.ListingTypeRent), testutil.WithPrice(1500))
	ts.CreateProperty(t, owner, testutil.WithStatus(models.PropertyStatusPending))

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/properties/sale", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var sale propertyListBody
	testutil.Decode(t, body, &sale)
	assert.Equal(t, 1, sale.Total)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/rent", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var rent propertyListBody
	testutil.Decode(t, body, &rent)
	assert.Equal(t, 1, rent.Total)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/search?min_price=5000&max_price=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/search?listing_type=LEASE", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/properties/meta/enums", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"listing_types":["SALE","RENT"]`)
}
