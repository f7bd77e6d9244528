package memorylimiter

import (
	"testing"
	"time"
)

func TestDeniesBeyondLimit(t *testing.T) {
	l := New(map[string]Limit{
		"menu_get": {Requests: 2, Window: time.Minute},
	})
	for i := 0; i < 2; i++ {
		ok, err := l.AllowNamed("menu_get", "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	ok, err := l.AllowNamed("menu_get", "10.0.0.1")
	if err != nil {
		t.Fatalf("AllowNamed: %v", err)
	}
	if ok {
		t.Error("third request should be denied")
	}

	// A different client is tracked separately.
	if ok, _ := l.AllowNamed("menu_get", "10.0.0.2"); !ok {
		t.Error("other client should be allowed")
	}
}

func TestFallsBackToDefaultBucket(t *testing.T) {
	l := New(map[string]Limit{
		"default": {Requests: 1, Window: time.Minute},
	})
	if ok, _ := l.AllowNamed("account_get", "k"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := l.AllowNamed("account_get", "k"); ok {
		t.Error("default bucket limit of 1 not applied")
	}
}

func TestRejectsEmptyBucketOrKey(t *testing.T) {
	l := New(nil)
	if _, err := l.AllowNamed("", "k"); err == nil {
		t.Error("empty bucket should error")
	}
	if _, err := l.AllowNamed("b", ""); err == nil {
		t.Error("empty key should error")
	}
}

func TestNilLimiterAllowsEverything(t *testing.T) {
	var l *Limiter
	ok, err := l.AllowNamed("menu_get", "k")
	if err != nil || !ok {
		t.Fatalf("nil limiter: ok=%v err=%v", ok, err)
	}
}
