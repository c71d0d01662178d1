package binance

import "testing"

func TestSigner_Sign(t *testing.T) {
	// Reference vector from the Binance API documentation.
	s := NewSigner("apiKey", "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e33UlcHeh1UwTvrNhGvRg")
	query := "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"

	want := "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71"
	if got := s.Sign(query); got != want {
		t.Errorf("Sign() = %s, want %s", got, want)
	}
}

func TestSigner_APIKey(t *testing.T) {
	s := NewSigner("my-key", "my-secret")
	if s.APIKey() != "my-key" {
		t.Errorf("APIKey() = %s", s.APIKey())
	}
}

func TestSigner_Wipe(t *testing.T) {
	s := NewSigner("my-key", "my-secret")
	s.Wipe()

	if s.APIKey() != "\x00\x00\x00\x00\x00\x00" {
		t.Error("Wipe left the API key readable")
	}
}
