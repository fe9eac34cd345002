package util

import (
	"testing"
	"time"

	"quiz_app_backend/internal/model"
)

func testUser() *model.User {
	return &model.User{
		UUIDBase: model.UUIDBase{ID: "u1"},
		UserName: "alice",
		Email:    "alice@example.com",
		Roles: []model.Role{
			{Name: model.RoleAdmin},
			{Name: model.RoleUser},
		},
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(testUser(), secret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.UserName != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.HasRole(model.RoleAdmin) || !claims.HasRole(model.RoleUser) {
		t.Fatalf("roles missing from token: %v", claims.Roles)
	}
	if claims.HasRole(model.RoleEditor) {
		t.Fatal("token must not carry roles the user does not have")
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "wrong-secret"); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
