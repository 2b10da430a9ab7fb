package service

import (
	"fmt"

	"rpg-server/internal/models"

	"go.uber.org/zap"
)

const (
	playerVarianceMin = -2
	playerVarianceMax = 5
	enemyVarianceMin  = -2
	enemyVarianceMax  = 2

	criticalChance     = 0.15
	criticalMultiplier = 2
	fleeChance         = 0.7

	experiencePerEnemyLevel = 50
	coinsPerEnemyLevel      = 20
)

// BattleState - состояние боя.
type BattleState int

const (
	BattleEncounterStart BattleState = iota
	BattlePlayerTurn
	BattleEnemyReply
	BattleVictory
	BattleDefeat
	BattleFled
)

func (s BattleState) String() string {
	switch s {
	case BattleEncounterStart:
		return "encounter_start"
	case BattlePlayerTurn:
		return "player_turn"
	case BattleEnemyReply:
		return "enemy_reply"
	case BattleVictory:
		return "victory"
	case BattleDefeat:
		return "defeat"
	case BattleFled:
		return "fled"
	default:
		return fmt.Sprintf("BattleState(%d)", int(s))
	}
}

// Rewards - награда за победу.
type Rewards struct {
	Experience int
	Coins      int
	LeveledUp  bool
	NewLevel   int
}

// AttackResult - итог одного хода атаки.
type AttackResult struct {
	Damage       int  // Урон игрока по противнику
	Critical     bool // Критический удар
	EnemyReplied bool // Противник успел ответить
	EnemyDamage  int  // Урон противника по игроку
	State        BattleState
	Rewards      *Rewards // Только при победе
}

// Battle - один бой игрока с противником.
type Battle struct {
	Player *models.Player
	Enemy  *models.Enemy

	state  BattleState
	rounds int
	game   *GameService
	logger *zap.Logger
}

// StartBattle создает противника по режиму и уровню игрока и начинает бой.
func (s *GameService) StartBattle(p *models.Player) *Battle {
	return s.NewBattle(p, s.CreateEnemy(p.Mode, p.Level))
}

// NewBattle начинает бой с заданным противником.
func (s *GameService) NewBattle(p *models.Player, enemy *models.Enemy) *Battle {
	return &Battle{
		Player: p,
		Enemy:  enemy,
		state:  BattleEncounterStart,
		game:   s,
		logger: s.logger.With(zap.String("player", p.Name), zap.String("enemy", enemy.Name)),
	}
}

// State возвращает текущее состояние боя.
func (b *Battle) State() BattleState {
	return b.state
}

// Rounds - количество сделанных атак.
func (b *Battle) Rounds() int {
	return b.rounds
}

// IsOver сообщает, завершен ли бой.
func (b *Battle) IsOver() bool {
	switch b.state {
	case BattleVictory, BattleDefeat, BattleFled:
		return true
	}
	return false
}

// Attack выполняет атаку игрока. Смерть противника проверяется сразу после удара,
// поэтому убитый противник не контратакует. Иначе противник отвечает, и если
// здоровье игрока падает до нуля, бой заканчивается поражением.
func (b *Battle) Attack() (*AttackResult, error) {
	if b.IsOver() {
		return nil, ErrBattleOver
	}
	b.state = BattlePlayerTurn
	b.rounds++
	g := b.game

	dmg := max(1, b.Player.Attack-b.Enemy.Defense+rollRange(g.roller, playerVarianceMin, playerVarianceMax))
	res := &AttackResult{}
	if g.rules.CriticalHits && g.roller.Float64() < criticalChance {
		dmg *= criticalMultiplier
		res.Critical = true
	}
	b.Enemy.Health -= dmg
	res.Damage = dmg

	if b.Enemy.IsDefeated() {
		res.Rewards = b.win()
		res.State = b.state
		return res, nil
	}

	b.state = BattleEnemyReply
	enemyDmg := max(1, b.Enemy.Attack-b.Player.Defense+rollRange(g.roller, enemyVarianceMin, enemyVarianceMax))
	b.Player.TakeDamage(enemyDmg)
	res.EnemyReplied = true
	res.EnemyDamage = enemyDmg

	if b.Player.IsDefeated() {
		b.state = BattleDefeat
		b.logger.Info("Player defeated", zap.Int("rounds", b.rounds))
	} else {
		b.state = BattlePlayerTurn
	}
	res.State = b.state
	return res, nil
}

// Run пытается сбежать: успех с вероятностью 70%. Неудача просто возвращает ход игроку.
func (b *Battle) Run() (bool, error) {
	if b.IsOver() {
		return false, ErrBattleOver
	}
	if b.game.roller.Float64() < fleeChance {
		b.state = BattleFled
		b.logger.Debug("Player fled", zap.Int("rounds", b.rounds))
		return true, nil
	}
	b.state = BattlePlayerTurn
	return false, nil
}

// UseItem использует предмет во время боя. Это свободное действие: противник не отвечает.
func (b *Battle) UseItem(name string) (*ItemEffect, error) {
	if b.IsOver() {
		return nil, ErrBattleOver
	}
	effect, err := b.game.UseItem(b.Player, name)
	if err != nil {
		return nil, err
	}
	b.state = BattlePlayerTurn
	return effect, nil
}

func (b *Battle) win() *Rewards {
	b.state = BattleVictory
	r := &Rewards{
		Experience: b.Enemy.Level * experiencePerEnemyLevel,
		Coins:      b.Enemy.Level * coinsPerEnemyLevel,
	}
	b.Player.Coins += r.Coins
	r.LeveledUp = GainExperience(b.Player, r.Experience)
	r.NewLevel = b.Player.Level
	b.logger.Info("Battle won",
		zap.Int("rounds", b.rounds),
		zap.Int("experience", r.Experience),
		zap.Int("coins", r.Coins),
		zap.Bool("leveledUp", r.LeveledUp),
	)
	return r
}
