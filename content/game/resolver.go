package game

import (
	"time"

	"dog-tennis-catch/content/anim"
	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/physics"
)

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCatch
	OutcomePenalty
	OutcomeCaught
)

// Classify 按两个类别的并集判断碰撞结果，与参数顺序无关
func Classify(a, b uint32) Outcome {
	switch a | b {
	case CategoryPlayer | CategoryBall:
		return OutcomeCatch
	case CategoryPlayer | CategoryCat:
		return OutcomePenalty
	case CategoryPlayer | CategoryDangerDog:
		return OutcomeCaught
	}
	return OutcomeNone
}

// entityFor 找出碰撞中属于 category 的那个实体，已被移除则返回 nil
func (g *Game) entityFor(c physics.Contact, category uint32) *Entity {
	body := c.A
	if body.Category != category {
		body = c.B
	}
	e, ok := g.entities[body.ID]
	if !ok || e.Body != body {
		return nil
	}
	return e
}

func (g *Game) resolve(c physics.Contact) {
	if g.mode != config.ModePlaying || g.ending {
		return
	}

	switch Classify(c.Categories()) {
	case OutcomeCatch:
		ball := g.entityFor(c, CategoryBall)
		if ball == nil {
			return
		}
		g.destroy(ball)
		g.setScore(g.session.Score + 1)
		g.difficulty.OnScoreChanged(g.session.Score)
		g.cues.PlayCue(CueCatch)
		g.player.Run(anim.Sequence(
			anim.ScaleTo(1.2, 100*time.Millisecond, anim.Linear),
			anim.ScaleTo(1.0, 100*time.Millisecond, anim.Linear),
		))

	case OutcomePenalty:
		cat := g.entityFor(c, CategoryCat)
		if cat == nil {
			return
		}
		g.destroy(cat)
		g.setScore(g.session.Score - 1)
		g.cues.PlayCue(CuePenalty)
		g.player.Run(anim.Sequence(
			anim.MoveBy(-10, 0, 50*time.Millisecond, anim.Linear),
			anim.MoveBy(20, 0, 100*time.Millisecond, anim.Linear),
			anim.MoveBy(-10, 0, 50*time.Millisecond, anim.Linear),
		))

	case OutcomeCaught:
		dog := g.entityFor(c, CategoryDangerDog)
		if dog == nil {
			return
		}
		g.cues.PlayCue(CueGameOver)
		g.beginGameOver(dog)
	}
}
