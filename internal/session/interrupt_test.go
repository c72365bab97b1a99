package session

import "testing"

func TestInterruptRaiseConsume(t *testing.T) {
	t.Parallel()

	exits := 0
	i := NewInterrupt(func(int) { exits++ })

	i.Raise()
	if exits != 0 {
		t.Fatal("first raise must not exit")
	}
	if !i.Consume() {
		t.Fatal("expected outstanding request")
	}
	if i.Consume() {
		t.Fatal("request must clear after consume")
	}
}

func TestInterruptSecondRaiseEscalates(t *testing.T) {
	t.Parallel()

	var code int
	i := NewInterrupt(func(c int) { code = c })

	i.Raise()
	i.Raise() // unconsumed: must escalate
	if code != 130 {
		t.Fatalf("expected exit 130, got %d", code)
	}
}

func TestInterruptEngagedEscalates(t *testing.T) {
	t.Parallel()

	var code int
	i := NewInterrupt(func(c int) { code = c })

	i.SetEngaged(true)
	i.Raise() // session blocked on input: any raise escalates
	if code != 130 {
		t.Fatalf("expected exit 130, got %d", code)
	}

	code = 0
	i.SetEngaged(false)
	i.Consume()
	i.Raise()
	if code != 0 {
		t.Fatal("raise after disengage must queue, not exit")
	}
}
