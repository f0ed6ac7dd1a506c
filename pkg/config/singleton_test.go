package config

import (
	"sync"
	"testing"
)

func TestSetAndGetConfig(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)

	cfg := NewDefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:7777"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil || got.Server.ListenAddress != "127.0.0.1:7777" {
		t.Errorf("GetConfig = %+v", got)
	}
}

func TestMustGetConfigPanicsWhenUnset(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)
	SetConfig(nil)

	defer func() {
		if recover() == nil {
			t.Error("MustGetConfig should panic when uninitialized")
		}
	}()
	MustGetConfig()
}

func TestConcurrentAccess(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)
	SetConfig(NewDefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = GetConfig()
		}()
		go func() {
			defer wg.Done()
			SetConfig(NewDefaultConfig())
		}()
	}
	wg.Wait()
}
