package render

import "github.com/guilhermepo2/JumpyJump/fx"

// Pose is the latest animation and facing reported for one owner.
type Pose struct {
	Animation   fx.Animation
	FacingRight bool
}

// Animator is the AnimationSink the renderer reads poses from.
type Animator struct {
	poses map[any]Pose
}

func NewAnimator() *Animator {
	return &Animator{poses: make(map[any]Pose)}
}

func (a *Animator) PlayAnimation(owner any, anim fx.Animation) {
	p := a.poses[owner]
	p.Animation = anim
	a.poses[owner] = p
}

func (a *Animator) SetFacing(owner any, right bool) {
	p := a.poses[owner]
	p.FacingRight = right
	a.poses[owner] = p
}

// Pose returns the owner's pose; unknown owners idle facing right.
func (a *Animator) Pose(owner any) Pose {
	if p, ok := a.poses[owner]; ok {
		return p
	}
	return Pose{Animation: fx.AnimIdle, FacingRight: true}
}

func (a *Animator) Reset() {
	clear(a.poses)
}
