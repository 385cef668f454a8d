package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"importhub/internal/config"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const pingTimeout = 5 * time.Second

var (
	once         sync.Once
	valkeyClient valkey.Client
)

func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()

		options := valkey.ClientOption{
			InitAddress: []string{env.ValkeyHost + ":" + env.ValkeyPort},
			Password:    env.ValkeyPassword,
			Username:    env.ValkeyUsername,
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{
				ServerName: env.ValkeyHost,
			}
		}

		client, err := valkey.NewClient(options)
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

func TestCacheConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	client := GetCache()

	reply, err := client.Do(ctx, client.B().Ping().Build()).ToString()
	if err != nil {
		return fmt.Errorf("valkey ping failed: %w", err)
	}

	if reply != "PONG" {
		return fmt.Errorf("unexpected valkey ping reply: %s", reply)
	}

	return nil
}
