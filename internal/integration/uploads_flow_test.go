package integration

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/routes"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// doUpload posts one file to an attachment endpoint as multipart form
// data under the "file" field.
func doUpload(t *testing.T, path, token, fileName, contentType string, content []byte) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestServiceAttachmentFlow(t *testing.T) {
	propID := propertyIDByName(t, "Oakridge Villas")
	serviceID := serviceIDByCategory(t, propID, "Mowing")
	uploadPath := "/api/v1/admin/services/" + serviceID.String() + "/attachments"
	photo := []byte("fake png bytes of the freshly mowed north lawn")

	// 1) Admin uploads a photo against the service
	resp, data := doUpload(t, uploadPath, adminToken, "north-lawn.png", "image/png", photo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var att models.ServiceAttachment
	decodeInto(t, data, &att)
	require.Equal(t, "north-lawn.png", att.FileName)
	require.Equal(t, "image/png", att.ContentType)
	require.Equal(t, int64(len(photo)), att.SizeBytes)
	require.Equal(t, "admin", att.UploadedBy)

	resp, data = doRequest(t, http.MethodGet, uploadPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []*models.ServiceAttachment
	decodeInto(t, data, &list)
	require.Len(t, list, 1)

	// 2) The mapped owner can list and download it
	ownerListPath := "/api/v1/owner/services/" + serviceID.String() + "/attachments"
	resp, data = doRequest(t, http.MethodGet, ownerListPath, owner1Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &list)
	require.Len(t, list, 1)

	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/owner/attachments/services/"+att.ID.String(), owner1Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "north-lawn.png")
	require.Equal(t, strconv.Itoa(len(photo)), resp.Header.Get("Content-Length"))
	require.Equal(t, photo, data)

	// 3) Other owners get nothing
	resp, data = doRequest(t, http.MethodGet, ownerListPath, owner2Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, utils.ErrCodeForbidden, errorCode(t, data))

	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/owner/attachments/services/"+att.ID.String(), owner2Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, utils.ErrCodeForbidden, errorCode(t, data))

	// 4) Uploads over the service limit are refused
	oversize := bytes.Repeat([]byte("x"), constants.MaxServiceAttachmentBytes+1)
	resp, data = doUpload(t, uploadPath, adminToken, "survey.tif", "image/tiff", oversize)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	require.Equal(t, utils.ErrCodeFileTooLarge, errorCode(t, data))

	// A refused upload leaves nothing behind
	resp, data = doRequest(t, http.MethodGet, uploadPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &list)
	require.Len(t, list, 1)

	// 5) Requests without a file part are rejected up front
	var empty bytes.Buffer
	mw := multipart.NewWriter(&empty)
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, server.URL+uploadPath, &empty)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rawResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer rawResp.Body.Close()
	body, err := io.ReadAll(rawResp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rawResp.StatusCode)
	require.Equal(t, utils.ErrCodeInvalidPayload, errorCode(t, body))

	// 6) Cleanup
	resp, _ = doRequest(t, http.MethodDelete,
		"/api/v1/admin/attachments/services/"+att.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = doRequest(t, http.MethodGet, uploadPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &list)
	require.Empty(t, list)
}

func TestTicketAttachmentFlow(t *testing.T) {
	// Owner1's seeded irrigation ticket
	resp, data := doRequest(t, http.MethodGet, routes.OwnerTickets, owner1Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tickets []*models.Ticket
	decodeInto(t, data, &tickets)
	require.NotEmpty(t, tickets)
	ticketID := tickets[0].ID

	ownerUploadPath := "/api/v1/owner/tickets/" + ticketID.String() + "/attachments"
	photo := []byte("fake jpeg bytes showing the dry patch by the entrance")

	// 1) Owner documents the issue
	resp, data = doUpload(t, ownerUploadPath, owner1Token, "dry-patch.jpg", "image/jpeg", photo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var att models.TicketAttachment
	decodeInto(t, data, &att)
	require.Equal(t, "dry-patch.jpg", att.FileName)
	require.Equal(t, "owner1", att.UploadedBy)

	// 2) Admin sees it on the ticket
	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/admin/tickets/"+ticketID.String()+"/attachments", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []*models.TicketAttachment
	decodeInto(t, data, &list)
	require.Len(t, list, 1)

	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/admin/attachments/tickets/"+att.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, photo, data)

	// 3) Owner can download their own evidence back
	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/owner/attachments/tickets/"+att.ID.String(), owner1Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, photo, data)

	// 4) Other owners can neither upload nor download on this ticket
	resp, data = doUpload(t, ownerUploadPath, owner2Token, "sneaky.jpg", "image/jpeg", photo)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, utils.ErrCodeForbidden, errorCode(t, data))

	resp, data = doRequest(t, http.MethodGet,
		"/api/v1/owner/attachments/tickets/"+att.ID.String(), owner2Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, utils.ErrCodeForbidden, errorCode(t, data))

	// 5) The ticket limit is higher than the service one but still firm
	oversize := bytes.Repeat([]byte("x"), constants.MaxTicketAttachmentBytes+1)
	resp, data = doUpload(t, ownerUploadPath, owner1Token, "video-still.png", "image/png", oversize)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	require.Equal(t, utils.ErrCodeFileTooLarge, errorCode(t, data))

	// 6) Cleanup
	resp, _ = doRequest(t, http.MethodDelete,
		"/api/v1/admin/attachments/tickets/"+att.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
