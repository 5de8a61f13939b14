package enemy

import (
	"os"
	"testing"
)

var repoEnemies *EnemyYAMLConfig

func TestMain(m *testing.M) {
	repoEnemies = MustLoadEnemyConfig("../../assets/enemies.yaml")
	os.Exit(m.Run())
}
