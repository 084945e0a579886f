package event

const (
	EventInteractionCancelled = "interaction.cancelled"
	EventAnimatorBool         = "animator.bool"
	EventAimChanged           = "animator.aim"
)

type InteractionCancelledEvent struct {
	Source string
}

type AnimatorBoolEvent struct {
	Name  string
	Value bool
}

type AimChangedEvent struct {
	Aiming bool
}
