package classify

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"focustab/internal/model"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Fetch downloads an image and classifies it. Any failure (network, decode,
// blocked source) yields the default theme; callers never surface an error
// for classification.
func Fetch(ctx context.Context, url string) model.Theme {
	theme, err := fetchTheme(ctx, url)
	if err != nil {
		return model.DefaultTheme
	}
	return theme
}

func fetchTheme(ctx context.Context, url string) (model.Theme, error) {
	// Classify the thumbnail rendition: same palette, far fewer pixels.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, model.ThumbURL(url), nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return "", err
	}
	return Image(img), nil
}
