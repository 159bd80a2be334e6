package systems

import (
	"log"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
)

// ExplosionSpawner 接收死亡事件并生成爆炸效果
type ExplosionSpawner interface {
	SpawnExplosion(x, y float64, color colorutil.Color)
}

// enemyRecord 上一帧记录的敌人状态
type enemyRecord struct {
	x, y    float64
	color   colorutil.Color
	hpRatio float64
}

// DeathTracker 检测敌人的 存活 → 爆炸 状态转换
//
// 每个敌人 id 在一个追踪周期内至多爆炸一次。转换条件：
//   - 上一帧存活（hp > 0），本帧 hp <= 0：在当前位置爆炸
//   - 上一帧存活，本帧消失：在最后已知位置爆炸
//
// 连续 60 帧没有敌人时自动清空历史与已爆炸集合；Reset 立即清空。
type DeathTracker struct {
	spawner     ExplosionSpawner
	previous    map[string]enemyRecord
	exploded    map[string]struct{}
	emptyFrames int
}

// NewDeathTracker 创建死亡追踪器
func NewDeathTracker(spawner ExplosionSpawner) *DeathTracker {
	return &DeathTracker{
		spawner:  spawner,
		previous: make(map[string]enemyRecord),
		exploded: make(map[string]struct{}),
	}
}

// CheckDeaths 比较本帧与上一帧的敌人列表，对新死亡的敌人触发爆炸
func (dt *DeathTracker) CheckDeaths(enemies []components.EntitySnapshot) {
	current := make(map[string]enemyRecord, len(enemies))
	for i, e := range enemies {
		current[e.EntityID("enemy", i)] = enemyRecord{
			x:       e.X,
			y:       e.Y,
			color:   e.ParsedColor(),
			hpRatio: e.HP(),
		}
	}

	for id, prev := range dt.previous {
		if _, done := dt.exploded[id]; done {
			continue
		}
		if prev.hpRatio <= 0 {
			continue
		}

		cur, present := current[id]
		switch {
		case present && cur.hpRatio <= 0:
			dt.explode(id, cur)
		case !present:
			dt.explode(id, prev)
		}
	}

	dt.previous = current

	if len(current) == 0 {
		dt.emptyFrames++
		if dt.emptyFrames >= config.EmptyFrameResetThreshold {
			log.Printf("[DeathTracker] %d empty frames, clearing explosion history", dt.emptyFrames)
			dt.clear()
		}
	} else {
		dt.emptyFrames = 0
	}
}

// Reset 清空历史、已爆炸集合与空帧计数（关卡/场景切换时调用）
func (dt *DeathTracker) Reset() {
	log.Printf("[DeathTracker] Reset explosion tracking (%d credited)", len(dt.exploded))
	dt.clear()
}

// HasExploded 返回 id 是否已在本周期内爆炸
func (dt *DeathTracker) HasExploded(id string) bool {
	_, ok := dt.exploded[id]
	return ok
}

// EmptyFrames 返回连续空帧计数
func (dt *DeathTracker) EmptyFrames() int {
	return dt.emptyFrames
}

func (dt *DeathTracker) explode(id string, at enemyRecord) {
	if dt.spawner != nil {
		dt.spawner.SpawnExplosion(at.x, at.y, at.color)
	}
	dt.exploded[id] = struct{}{}
}

func (dt *DeathTracker) clear() {
	dt.previous = make(map[string]enemyRecord)
	dt.exploded = make(map[string]struct{})
	dt.emptyFrames = 0
}
