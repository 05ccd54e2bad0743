package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/souhailmerroun/memefeed/model"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

const defaultTimeout = 30 * time.Second

var _ Client = (*HTTPClient)(nil)

// HTTPClient is the default Client implementation talking to the meme api
// over HTTP with bearer auth.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// NewHTTPClientWithTransport injects a custom http.Client, used by tests to
// point at an httptest server without timeouts.
func NewHTTPClientWithTransport(baseURL string, client *http.Client) *HTTPClient {
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", errors.Wrap(err, "encode login payload")
	}

	var out struct {
		JWT string `json:"jwt"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/authentication/login", "", nil, bytes.NewReader(payload), "application/json", &out); err != nil {
		return "", err
	}
	return out.JWT, nil
}

func (c *HTTPClient) GetMemes(ctx context.Context, token string, page int) (*model.MemeListing, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	var listing model.MemeListing
	if err := c.doJSON(ctx, http.MethodGet, "/memes", token, query, nil, "", &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *HTTPClient) GetUserByID(ctx context.Context, token, id string) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), token, nil, nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) GetMemeComments(ctx context.Context, token, memeID string, page int) (*model.CommentListing, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	var listing model.CommentListing
	if err := c.doJSON(ctx, http.MethodGet, "/memes/"+url.PathEscape(memeID)+"/comments", token, query, nil, "", &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *HTTPClient) CreateMemeComment(ctx context.Context, token, memeID, content string) (*model.Comment, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, errors.Wrap(err, "encode comment payload")
	}

	var comment model.Comment
	if err := c.doJSON(ctx, http.MethodPost, "/memes/"+url.PathEscape(memeID)+"/comments", token, nil, bytes.NewReader(payload), "application/json", &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *HTTPClient) CreateMeme(ctx context.Context, token string, picture io.Reader, filename, description string, captions []model.Caption) (*model.RawMeme, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("picture", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create picture part")
	}
	if _, err := io.Copy(part, picture); err != nil {
		return nil, errors.Wrap(err, "copy picture")
	}
	if err := writer.WriteField("description", description); err != nil {
		return nil, errors.Wrap(err, "write description field")
	}
	texts, err := json.Marshal(captions)
	if err != nil {
		return nil, errors.Wrap(err, "encode captions")
	}
	if err := writer.WriteField("texts", string(texts)); err != nil {
		return nil, errors.Wrap(err, "write texts field")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize multipart body")
	}

	var meme model.RawMeme
	if err := c.doJSON(ctx, http.MethodPost, "/memes", token, nil, &body, writer.FormDataContentType(), &meme); err != nil {
		return nil, err
	}
	return &meme, nil
}

// doJSON performs one request against the api and decodes the JSON response
// into out. Non-2xx responses are logged with their body and returned as
// errors.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	if isNon2xxResponse(res) {
		logNon2xxResponse(res)
		return errors.Errorf("meme api returned status %d for %s %s", res.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

func isNon2xxResponse(res *http.Response) bool {
	return res.StatusCode < 200 || res.StatusCode >= 300
}

// Log the response body if the status code is not 2xx, truncated to keep a
// misbehaving backend from flooding the logs.
func logNon2xxResponse(res *http.Response) {
	body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return
	}
	Logger.Log.Errorf("non-2xx http code %d, response body: %s", res.StatusCode, string(body))
}
