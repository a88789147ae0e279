package entity

// Renderer handles rendering battle entities
type Renderer interface {
	RenderTrack(track *TrackPrint)
	RenderTank(tank *Tank)
	RenderShot(shot *Shot)
	RenderExplosion(explosion *Explosion)
	Clear()
	Present()
}
