package gallery

// Catalogue returns the authored portfolio, in display order. Each call
// returns a fresh slice.
func Catalogue() []Item {
	return []Item{
		{ID: "a", Title: "То ся зробить!", Width: 800, Height: 800, GridClass: "md:col-span-1", MobileGridClass: "col-span-2", IsText: true,
			Caption: "Інтерактивні скетчі: мишка, клік, слайдер.", MobileAspect: 2, MobileOffset: intPtr(24)},
		{ID: "gap-b", GridClass: "md:col-span-2", IsEmpty: true},
		{ID: "b", Title: "Повози мишкою ↓", URL: "https://editor.p5js.org/AnnaUsername/full/mUYkc5cng", Width: 1216, Height: 600, GridClass: "md:col-span-2", MobileGridClass: "col-span-2 col-start-3", Offset: 40, HideMetadata: true},
		{ID: "c-gap", GridClass: "md:col-span-1", IsEmpty: true},
		{ID: "c", URL: "https://editor.p5js.org/AnnaUsername/full/5q7hxjBF5", Width: 800, Height: 800, GridClass: "md:col-span-1", MobileGridClass: "col-span-3 col-start-2", Offset: 20, HideMetadata: true},
		{ID: "e", Title: "Поклацай ↓", URL: "https://editor.p5js.org/AnnaUsername/full/pW7bUsOOv", Width: 1800, Height: 800, GridClass: "md:col-span-3", MobileGridClass: "col-span-4", Offset: 60, HideMetadata: true},
		{ID: "spacer-row-e", GridClass: "md:col-span-1", IsEmpty: true},
		{ID: "gap-h", GridClass: "md:col-span-2", IsEmpty: true},
		{ID: "h", URL: "https://editor.p5js.org/AnnaUsername/full/lQeJceQ95", Width: 1000, Height: 900, GridClass: "md:col-span-2", MobileGridClass: "col-span-3", Offset: 30, HideMetadata: true},
		{ID: "gap-g", GridClass: "md:col-span-1", IsEmpty: true},
		{ID: "g", Title: "Потягай слайдер ↓", URL: "https://editor.p5js.org/AnnaUsername/full/l5ovERe5T", Width: 1480, Height: 900, GridClass: "md:col-span-3", MobileGridClass: "col-span-4", Offset: 40, HideMetadata: true},
		{ID: "f", URL: "https://editor.p5js.org/AnnaUsername/full/T0eelPoTz", Width: 2500, Height: 1200, GridClass: "md:col-span-3", MobileGridClass: "col-span-4", Offset: -30, HideMetadata: true},
	}
}
