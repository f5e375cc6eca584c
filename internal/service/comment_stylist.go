package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Espacio finito de estilos para comentarios dinamicos.
var (
	commentTones    = []string{"warm", "playful", "analytical", "poetic"}
	commentFocuses  = []string{"technique", "story", "emotion", "detail"}
	commentPersonas = []string{"mentor", "friend", "critic", "fan"}
)

// StyleTuple es una combinacion tono × foco × persona para un comentario.
type StyleTuple struct {
	Tone    string `json:"tone"`
	Focus   string `json:"focus"`
	Persona string `json:"persona"`
}

// CommentStylist sortea K estilos distintos del producto cruzado.
// En lugar de reintentos acotados, baraja el espacio completo una vez y
// consume los primeros K; solo hay repetidos si K supera el espacio.
type CommentStylist struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewCommentStylist(rng *rand.Rand) *CommentStylist {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>16))
	}
	return &CommentStylist{rng: rng}
}

// DrawStyles devuelve k tuplas de estilo; las primeras min(k, espacio) son
// todas distintas entre si.
func (s *CommentStylist) DrawStyles(k int) []StyleTuple {
	if k <= 0 {
		return nil
	}

	space := make([]StyleTuple, 0, len(commentTones)*len(commentFocuses)*len(commentPersonas))
	for _, t := range commentTones {
		for _, f := range commentFocuses {
			for _, p := range commentPersonas {
				space = append(space, StyleTuple{Tone: t, Focus: f, Persona: p})
			}
		}
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(space))
	s.mu.Unlock()

	out := make([]StyleTuple, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, space[perm[i%len(perm)]])
	}
	return out
}
