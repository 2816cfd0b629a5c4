package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"

	"rectdraw/internal/scene"
	"rectdraw/internal/server"
)

const (
	defaultAddr    = ":2222"
	defaultHostKey = "host_key"
	scenesDir      = "assets/scenes"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	hostKeyPath := defaultHostKey
	if p := os.Getenv("HOST_KEY"); p != "" {
		hostKeyPath = p
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	sc := loadScene(os.Getenv("SCENE"))
	log.Printf("Scene loaded: %s (%d rooms, %d canvases)", sc.Name, len(sc.Rooms), len(sc.Canvases))

	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, sc)
	log.Printf("Starting rectdraw, connect with: ssh -p %s localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// loadScene picks the named scene from the scenes directory, or the first
// one by name when name is empty. Falls back to the built-in scene.
func loadScene(name string) *scene.Scene {
	all, err := scene.LoadScenes(scenesDir)
	if err != nil {
		log.Printf("Could not load scenes from %s: %v, using default scene", scenesDir, err)
		return scene.DefaultScene()
	}
	if name != "" {
		if sc, ok := all[name]; ok {
			return sc
		}
		log.Printf("Scene %q not found in %s, using default scene", name, scenesDir)
		return scene.DefaultScene()
	}
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	if len(names) == 0 {
		return scene.DefaultScene()
	}
	sort.Strings(names)
	return all[names[0]]
}

// ensureHostKey writes a fresh ed25519 key to path unless one is there.
func ensureHostKey(path string) error {
	switch _, err := os.Stat(path); {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat host key: %w", err)
	}

	log.Printf("Generating host key at %s", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write host key: %w", err)
	}
	return nil
}
