package parser

import "regexp"

// Compiled line patterns. All are case-insensitive.
var (
	timestampRe = regexp.MustCompile(`^<([^>]+)>`)

	loginRe    = regexp.MustCompile(`(?i)\[Notice\] <Legacy login response> \[CIG-net\] User Login Success - Handle\[([A-Za-z0-9_-]+)\]`)
	versionRe  = regexp.MustCompile(`(?i)\[Cmdline\s*\]\s*--system-trace-env-id='pub-sc-alpha-(\d+)-\d+'`)
	geidRe     = regexp.MustCompile(`(?i)playerGEID=(\d+)`)
	playerIDRe = regexp.MustCompile(`(?i)geid (\d+).*?name ([A-Za-z0-9_-]+)`)

	spawnedRe        = regexp.MustCompile(`(?i)\[CSessionManager::OnClientSpawned\] Spawned!`)
	frontendClosedRe = regexp.MustCompile(`(?i)Loading screen for Frontend_Main : SC_Frontend closed after ([\d.]+) seconds`)

	spawnResetRe = regexp.MustCompile(`(?i)<Spawn Flow>.*?Player '([^']+)' \[(\d+)\] lost reservation for spawnpoint`)
	spawnpointRe = regexp.MustCompile(`(?i)spawnpoint\s+([^\[]+)`)

	setupEnvelopeRe   = regexp.MustCompile(`(?i)<Setup Envelope Failure>.*?\|\s*([A-Z]{4}_[^\[]+)\[(\d+)\]`)
	fuelLambdaRe      = regexp.MustCompile(`(?i)<lambda_1>::operator.*?Ownerless fuel controller created`)
	fuelConfirmRe     = regexp.MustCompile(`(?i)No vehicle for Fuel controller during RWES`)
	vehicleControlRe  = regexp.MustCompile(`(?i)CVehicleMovementBase::SetDriver: Local client node \[(\d+)\] requesting control token for '([^']+)' \[(\d+)\]`)
	vehicleGrantedRe  = regexp.MustCompile(`(?i)CVehicle::Initialize.*?Local client node \[(\d+)\] granted control token for '([^']+)' \[(\d+)\]`)
	vehicleDestructRe = regexp.MustCompile(`(?i)<Vehicle Destruction> CVehicle::OnAdvanceDestroyLevel: Vehicle '([^']+)' \[(\d+)\] in zone '([^']+)' \[pos x: ([-\d.]+), y: ([-\d.]+), z: ([-\d.]+) vel x: [^,]+, y: [^,]+, z: [^\]]+\] driven by '([^']+)' \[\d+\] advanced from destroy level (\d+) to (\d+) caused by '([^']+)' \[\d+\] with '([^']+)'`)

	locationRe    = regexp.MustCompile(`(?i)landing zone location "@([^"]+)"`)
	landingDoorRe = regexp.MustCompile(`(?i)LandingArea.*- Door:\s*([^,\]]+)[\],].*State:\s*([A-Za-z]+)`)
	carriageRe    = regexp.MustCompile(`(?i)Carriage\s+(\d+)\s+\(Id:\s*([0-9]+)\)\s+for manager\s+([A-Za-z0-9_\-]+)\s+(starting|finished)\s+transit\s+in zone\s+([A-Za-z0-9_\-]+)\s+at position x:\s*([-\d.]+),\s*y:\s*([-\d.]+),\s*z:\s*([-\d.]+)`)

	posRe          = regexp.MustCompile(`(?i)at position x:\s*([-\d.]+),\s*y:\s*([-\d.]+),\s*z:\s*([-\d.]+)`)
	nickRe         = regexp.MustCompile(`(?i)nickname="([^"]+)"`)
	managerTokenRe = regexp.MustCompile(`(TransitManager[^\s,;:]*)`)
	playerEventRe  = regexp.MustCompile(`(?i)Player:?\s+'?([^'\s,]+)'?`)
	statusEffectRe = regexp.MustCompile(`(?i)Logged a start of a status effect! nickname: ([^,]+), status effect: (.+)`)
	corpseRe       = regexp.MustCompile(`(?i)Player '([^']+)'`)
	corpsifyRe     = regexp.MustCompile(`(?i)\[ActorState\] Corpse.*?Player '([^']+)'.*?Running corpsify`)
	incapRe        = regexp.MustCompile(`(?i)Logged an incap.! nickname: ([^,]+), causes: (.+)`)
	stallRe        = regexp.MustCompile(`(?i)Actor stall detected, Player: ([^,]+), Type: (\w+), Length: ([\d.]+).`)
	spawnFlowRe    = regexp.MustCompile(`(?i)Player '([^']+)' \[(\d+)\].*?(?:lost|gained|reservation)`)
	detachNameRe   = regexp.MustCompile(`(?i)name = "([^"]+)"`)
	hostilityRe    = regexp.MustCompile(`(?i)Fake hit FROM\s+(\S+)\s+TO\s+(\S+)\.(?:[^.]*?Being sent to child\s+(\S+))?`)

	deathRe         = regexp.MustCompile(`(?i)CActor::Kill: '([^']+)' \[(\d+)\] in zone '([^']+)' killed by '([^']+)' \[(\d+)\] using '([^']+)' \[Class ([^\]]+)\] with damage type '([^']+)' from direction x: ([-.\d]+), y: ([-.\d]+), z: ([-.\d]+)`)
	deathAltRe      = regexp.MustCompile(`(?i)<Actor Death>\s*CActor::Kill: '([^']+)' \[\d+\] in zone '([^']+)' killed by '([^']+)' \[[^\]]+\] using '([^']+)' \[Class ([^\]]+)\] with damage type '([^']+)'`)
	deathFallbackRe = regexp.MustCompile(`(?i)CActor::Kill: '([^']+)'(?: \[\d+\])?(?:.*?in zone '([^']+)')?(?:.*?killed by '([^']+)')?(?:.*?using '([^']+)')?(?:.*?damage type '([^']+)')?`)
)
