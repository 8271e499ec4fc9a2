// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// EngineScheduler drives the engine's time-based progression: mission
// countdowns becoming claimable, ability effect windows expiring, and
// folding passive energy regeneration back into stored rows.
type EngineScheduler struct {
	Missions  *MissionService
	Abilities *AbilityService
	Actions   *ActionService

	sched gocron.Scheduler
}

func NewEngineScheduler(missions *MissionService, abilities *AbilityService, actions *ActionService) *EngineScheduler {
	return &EngineScheduler{Missions: missions, Abilities: abilities, Actions: actions}
}

func (e *EngineScheduler) Start() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to start: %v", err)
		return
	}
	e.sched = sched
	sched.Start()

	// Every second: flip finished missions to claimable, clear expired
	// ability effect windows.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Second),
		gocron.NewTask(func() {
			e.Missions.SweepCountdowns()
			e.Abilities.SweepExpired()
		}),
	)

	// Every minute: checkpoint regenerated energy so restarts don't lose it.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			e.Actions.PersistEnergy()
		}),
	)

	log.Println("⏱️ Engine scheduler started")
}

func (e *EngineScheduler) Stop() {
	if e.sched != nil {
		if err := e.sched.Shutdown(); err != nil {
			log.Printf("[Scheduler] Shutdown error: %v", err)
		}
	}
}
