package models

// GuestResponse is returned by the guest login endpoint.
type GuestResponse struct {
	PlayerID string `json:"player_id"`
	Token    string `json:"token"`
}
