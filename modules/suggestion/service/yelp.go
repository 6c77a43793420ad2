package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"plansync/core/config"
	"plansync/core/constants"
	"plansync/modules/suggestion/dto"
)

const yelpSearchURL = "https://api.yelp.com/v3/businesses/search"

type yelpClient struct {
	apiKey string
	client *http.Client
}

func newYelpClient(cfg config.YelpConfig) *yelpClient {
	return &yelpClient{
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: constants.DefaultRequestTimeout},
	}
}

func (c *yelpClient) SearchPlaces(ctx context.Context, term, location string, limit int) ([]dto.PlaceResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Yelp API key is not configured")
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("location", location)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, "GET", yelpSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yelp API error: %d: %s", resp.StatusCode, string(respBody))
	}

	var searchResp struct {
		Businesses []struct {
			Name     string  `json:"name"`
			Rating   float64 `json:"rating"`
			URL      string  `json:"url"`
			Location struct {
				DisplayAddress []string `json:"display_address"`
			} `json:"location"`
			Categories []struct {
				Title string `json:"title"`
			} `json:"categories"`
		} `json:"businesses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	places := make([]dto.PlaceResponse, 0, len(searchResp.Businesses))
	for _, b := range searchResp.Businesses {
		place := dto.PlaceResponse{
			Name:   b.Name,
			Rating: b.Rating,
			URL:    b.URL,
		}
		if len(b.Location.DisplayAddress) > 0 {
			place.Address = b.Location.DisplayAddress[0]
		}
		if len(b.Categories) > 0 {
			place.Category = b.Categories[0].Title
		}
		places = append(places, place)
	}
	return places, nil
}
