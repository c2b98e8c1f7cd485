package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/routes"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// TestPropertyAdministrationFlow provisions a property with an owner
// login and a configured service, walks the admin edits including the
// notified status change, and then tears everything down again.
func TestPropertyAdministrationFlow(t *testing.T) {
	// Seeded portfolio baseline
	resp, data := doRequest(t, http.MethodGet, routes.AdminProperties, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var props []*models.Property
	decodeInto(t, data, &props)
	require.Len(t, props, 10)

	// 1) New property
	resp, data = doRequest(t, http.MethodPost, routes.AdminProperties, adminToken, dtos.CreatePropertyRequest{
		Name:    "Juniper Point HOA",
		Address: "400 Juniper Point Dr",
		City:    "Prosper",
		State:   "TX",
		Zip:     "75078",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prop models.Property
	decodeInto(t, data, &prop)
	propPath := "/api/v1/admin/properties/" + prop.ID.String()

	// 2) Owner login for it, with an email on file but no phone
	resp, data = doRequest(t, http.MethodPost, routes.AdminUsers, adminToken, dtos.CreateUserRequest{
		Username:   "juniper.owner",
		Password:   "juniper123",
		FullName:   "Juniper Point Board",
		Role:       constants.RoleOwner,
		Email:      "board@juniperpoint.example.com",
		PropertyID: &prop.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var owner models.User
	decodeInto(t, data, &owner)
	require.Equal(t, "Juniper Point HOA", owner.PropertyName)

	// Owners cannot be created without a property mapping
	resp, data = doRequest(t, http.MethodPost, routes.AdminUsers, adminToken, dtos.CreateUserRequest{
		Username: "floating.owner",
		Password: "floating123",
		Role:     constants.RoleOwner,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 3) Configure a service; the frequency label is derived
	resp, data = doRequest(t, http.MethodPost, propPath+"/services", adminToken, dtos.CreateServiceRequest{
		Category:     "Mowing",
		TimesPerYear: 22,
		EachTimeCost: decimal.NewFromInt(58),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var svc models.PropertyService
	decodeInto(t, data, &svc)
	require.Equal(t, "Weekly (22 visits)", svc.Frequency)
	require.Equal(t, constants.ServiceStatusScheduled, svc.Status)
	require.Equal(t, "admin", svc.UpdatedBy)
	svcPath := "/api/v1/admin/services/" + svc.ID.String()

	// Detail view rolls the service up under the property
	resp, data = doRequest(t, http.MethodGet, propPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dtos.PropertyDetailResponse
	decodeInto(t, data, &detail)
	require.Len(t, detail.Services, 1)

	// 4) Rename and set the revenue figures
	resp, data = doRequest(t, http.MethodPut, propPath, adminToken, dtos.UpdatePropertyRequest{
		Name:    "Juniper Point HOA Phase II",
		Address: "400 Juniper Point Dr",
		City:    "Prosper",
		State:   "TX",
		Zip:     "75078",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = doRequest(t, http.MethodPatch, propPath+"/financials", adminToken, dtos.UpdatePropertyFinancialsRequest{
		AnnualQuote:    decimal.RequireFromString("1658.80"),
		AnnualCredited: decimal.RequireFromString("1575.86"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &prop)
	require.Equal(t, "Juniper Point HOA Phase II", prop.Name)
	requireAmount(t, "1658.80", prop.AnnualQuote)
	requireAmount(t, "1575.86", prop.AnnualCredited)

	// Negative figures are rejected
	resp, data = doRequest(t, http.MethodPatch, propPath+"/financials", adminToken, dtos.UpdatePropertyFinancialsRequest{
		AnnualQuote: decimal.NewFromInt(-5),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 5) Status change fans out to the owner on file. Email goes to the
	// unconfigured transport; SMS is skipped because no phone is stored.
	resp, data = doRequest(t, http.MethodPatch, svcPath+"/status", adminToken, dtos.UpdateServiceStatusRequest{
		Status:      constants.ServiceStatusInProgress,
		NotifyEmail: true,
		NotifySMS:   true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var statusResp dtos.ServiceStatusUpdateResponse
	decodeInto(t, data, &statusResp)
	require.Equal(t, constants.ServiceStatusInProgress, statusResp.Service.Status)
	require.Len(t, statusResp.Notifications, 1)
	require.Equal(t, "juniper.owner", statusResp.Notifications[0].Username)
	require.Equal(t, services.EmailNotConfiguredResult, statusResp.Notifications[0].Email)
	require.Empty(t, statusResp.Notifications[0].SMS)

	// Unknown statuses never land
	resp, data = doRequest(t, http.MethodPatch, svcPath+"/status", adminToken,
		dtos.UpdateServiceStatusRequest{Status: "Paused"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 6) Deleting the property is blocked while dependents exist
	resp, data = doRequest(t, http.MethodDelete, propPath, adminToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, utils.ErrCodeConflict, errorCode(t, data))

	resp, _ = doRequest(t, http.MethodDelete, svcPath, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodDelete, "/api/v1/admin/users/"+owner.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodDelete, propPath, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Portfolio is back to the seeded ten
	resp, data = doRequest(t, http.MethodGet, routes.AdminProperties, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &props)
	require.Len(t, props, 10)
}

func TestServiceCatalogAdministration(t *testing.T) {
	// Cross-property service listing carries the property join
	resp, data := doRequest(t, http.MethodGet, routes.AdminServices, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var configured []*models.PropertyService
	decodeInto(t, data, &configured)
	require.Len(t, configured, 60)
	for _, s := range configured {
		require.NotEmpty(t, s.PropertyName)
	}

	// Price master carries the six seeded defaults
	resp, data = doRequest(t, http.MethodGet, routes.AdminPrices, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prices []*models.PriceMasterRow
	decodeInto(t, data, &prices)
	require.Len(t, prices, 6)

	// Personnel roster
	resp, data = doRequest(t, http.MethodGet, routes.AdminPersonnel, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var crew []*models.ServicePerson
	decodeInto(t, data, &crew)
	require.Len(t, crew, 3)
	for _, p := range crew {
		require.True(t, p.IsActive)
	}
}
