package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const (
	dogURL = "https://dog.ceo/api/breeds/image/random"
	catURL = "https://api.thecatapi.com/v1/images/search"
)

// AvatarFetcher produces a random placeholder avatar image.
type AvatarFetcher interface {
	FetchRandomAvatar() ([]byte, error)
}

// PlaceholderAvatars pulls random pet pictures from free placeholder APIs.
type PlaceholderAvatars struct {
	client *http.Client
}

func NewPlaceholderAvatars() *PlaceholderAvatars {
	return &PlaceholderAvatars{client: &http.Client{Timeout: 15 * time.Second}}
}

func (p *PlaceholderAvatars) getDogPhoto() (string, error) {
	resp, err := p.client.Get(dogURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (p *PlaceholderAvatars) getCatPhoto() (string, error) {
	resp, err := p.client.Get(catURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload []struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", errors.New("empty cat api response")
	}
	return payload[0].URL, nil
}

// FetchRandomAvatar picks one of the two placeholder APIs at random and
// downloads the image.
func (p *PlaceholderAvatars) FetchRandomAvatar() ([]byte, error) {
	var (
		imageURL string
		err      error
	)
	if rand.Intn(2) == 0 {
		imageURL, err = p.getDogPhoto()
	} else {
		imageURL, err = p.getCatPhoto()
	}
	if err != nil {
		return nil, fmt.Errorf("fetch avatar url: %w", err)
	}

	resp, err := p.client.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("download avatar: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
