// AI background generation through an OpenAI-compatible images
// endpoint. Used when a key is configured and no background file is
// given; failures degrade to the procedural placeholder.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-retryablehttp"
)

// backgroundSize is the portrait size requested from the image model,
// the closest supported aspect to the canvas. The compositor resizes
// the result to the exact canvas dimensions.
const backgroundSize = "1024x1536"

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// backgroundPrompt turns the derived content into an image prompt. The
// headline already goes on the image as text, so the prompt asks for a
// clean photograph without any.
func backgroundPrompt(c postContent) string {
	subject := c.Description
	if subject == "" {
		subject = c.Bullet
	}
	return fmt.Sprintf(
		"A photorealistic editorial news photograph illustrating: %s. No text, no watermarks, no logos.",
		subject)
}

// generateBackground asks the configured images endpoint for a portrait
// background photo and decodes the base64 payload it returns.
func generateBackground(c postContent, cfg *ContentConfig, key string) (image.Image, error) {
	payload, err := json.Marshal(imageRequest{
		Model:  cfg.ImageModel,
		Prompt: backgroundPrompt(c),
		N:      1,
		Size:   backgroundSize,
	})
	if err != nil {
		return nil, err
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil

	req, err := retryablehttp.NewRequest("POST",
		strings.TrimSuffix(cfg.APIBaseURL, "/")+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image API returned HTTP %d", resp.StatusCode)
	}

	var parsed imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding image API response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("image API returned no image data")
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding generated image: %w", err)
	}

	fmt.Fprintf(logOut, "Generated background image (%dx%d)\n",
		img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
