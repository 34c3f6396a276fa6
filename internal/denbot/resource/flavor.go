package resource

import (
	"github.com/valyala/fastrand"
)

// flavor lines under the night banner, one picked at random
var nightFlavors = []string{
	IconNight + " Туман ложится на поляны, где-то хрустнула ветка...",
	IconNight + " Луна спряталась за тучи, в чаще блеснули чьи-то глаза...",
	IconNight + " Лес затих, только сова считает спящих...",
	IconNight + " Ветер гонит листья мимо запертых нор...",
	IconNight + " Где-то вдалеке завыли. Или показалось?",
}

func RandomNightFlavor() string {
	return nightFlavors[fastrand.Uint32n(uint32(len(nightFlavors)))]
}
