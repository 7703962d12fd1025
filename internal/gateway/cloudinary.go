package gateway

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Папка в Cloudinary, куда складываются изображения гардероба.
const cloudinaryFolder = "outfitbloom-wardrobe"

// CloudinaryClient — клиент загрузки изображений гардероба в Cloudinary.
//
// Используется подписанная загрузка: подпись считается как SHA-1 от строки
// параметров запроса (в алфавитном порядке) с добавленным api_secret.
type CloudinaryClient struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	apiURL     string
	httpClient *http.Client
}

// NewCloudinaryClient создаёт новый клиент Cloudinary.
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		apiURL:     "https://api.cloudinary.com/v1_1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload отправляет файл в Cloudinary и возвращает https-URL изображения.
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign("folder=" + cloudinaryFolder + "&timestamp=" + timestamp)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	fields := map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"signature": signature,
		"folder":    cloudinaryFolder,
	}
	for field, value := range fields {
		if err := mw.WriteField(field, value); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	url := c.apiURL + "/" + c.cloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("unexpected status: " + resp.Status)
	}

	var uploadResp cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", err
	}
	return uploadResp.SecureURL, nil
}

func (c *CloudinaryClient) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
